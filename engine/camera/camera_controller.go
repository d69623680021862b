package camera

import (
	"github.com/calder-dev/pentaview/common"
)

// cameraControllerImpl is the implementation of the CameraController interface.
type cameraControllerImpl struct {
	// speed is the per-update displacement magnitude in world units.
	speed float32

	forwardPressed  bool
	backwardPressed bool
	leftPressed     bool
	rightPressed    bool

	// pointerX, pointerY record the last observed cursor position.
	pointerX int32
	pointerY int32
}

// CameraController turns key press state into camera movement. It tracks which
// movement keys are currently held and applies one displacement step per
// UpdateCamera call.
type CameraController interface {
	// ProcessKey records a key press or release.
	//
	// Parameters:
	//   - keyCode: the virtual key code (common.KeyW etc.)
	//   - pressed: true on press, false on release
	//
	// Returns:
	//   - bool: true if the key maps to a movement action, false otherwise
	ProcessKey(keyCode uint32, pressed bool) bool

	// ProcessPointerMove records the cursor position. The event is always
	// consumed; cursor movement does not affect the camera.
	//
	// Parameters:
	//   - x, y: the cursor position in window coordinates
	ProcessPointerMove(x, y int32)

	// PointerPosition retrieves the last recorded cursor position.
	//
	// Returns:
	//   - x, y: the cursor position in window coordinates
	PointerPosition() (x, y int32)

	// Speed retrieves the per-update displacement magnitude.
	//
	// Returns:
	//   - float32: the movement speed
	Speed() float32

	// UpdateCamera applies one movement step to the camera based on the held
	// keys. Forward motion is suppressed when the camera is within one step of
	// its target, so the eye never reaches or passes through it. Strafing
	// re-projects the eye onto a circle around the target: the distance to the
	// target is measured after the dolly step and preserved exactly, so left
	// or right input orbits rather than drifts.
	//
	// Parameters:
	//   - cam: the camera to move
	UpdateCamera(cam Camera)
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new CameraController with the specified
// options applied over the default movement speed of 0.2 world units.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the configured controller
func NewCameraController(options ...CameraControllerBuilderOption) CameraController {
	cc := &cameraControllerImpl{
		speed: 0.2,
	}
	for _, opt := range options {
		opt(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessKey(keyCode uint32, pressed bool) bool {
	switch keyCode {
	case common.KeyW, common.KeyUp:
		cc.forwardPressed = pressed
		return true
	case common.KeyA, common.KeyLeft:
		cc.leftPressed = pressed
		return true
	case common.KeyS, common.KeyDown:
		cc.backwardPressed = pressed
		return true
	case common.KeyD, common.KeyRight:
		cc.rightPressed = pressed
		return true
	default:
		return false
	}
}

func (cc *cameraControllerImpl) ProcessPointerMove(x, y int32) {
	cc.pointerX = x
	cc.pointerY = y
}

func (cc *cameraControllerImpl) PointerPosition() (int32, int32) {
	return cc.pointerX, cc.pointerY
}

func (cc *cameraControllerImpl) Speed() float32 {
	return cc.speed
}

func (cc *cameraControllerImpl) UpdateCamera(cam Camera) {
	eye := cam.Eye()
	target := cam.Target()

	forward := target.Sub(eye)
	forwardNorm := forward.Normalize()
	forwardMag := forward.Len()

	// Dolly along the view direction. The forward step is skipped once the
	// remaining distance would be consumed by a single step, which keeps the
	// eye strictly outside the target.
	if cc.forwardPressed && forwardMag > cc.speed {
		eye = eye.Add(forwardNorm.Mul(cc.speed))
	}
	if cc.backwardPressed {
		eye = eye.Sub(forwardNorm.Mul(cc.speed))
	}

	right := forwardNorm.Cross(cam.Up())

	// The strafe step works off the post-dolly forward vector, so combined
	// forward+strafe input preserves the post-dolly orbit radius.
	forward = target.Sub(eye)
	forwardMag = forward.Len()

	if cc.rightPressed {
		eye = target.Sub(forward.Add(right.Mul(cc.speed)).Normalize().Mul(forwardMag))
	}
	if cc.leftPressed {
		eye = target.Sub(forward.Sub(right.Mul(cc.speed)).Normalize().Mul(forwardMag))
	}

	cam.SetEye(eye)
}
