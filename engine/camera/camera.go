package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// depthCorrection maps OpenGL clip-space depth [-1, 1] onto the WebGPU
// depth range [0, 1]. Column-major: z is scaled by 0.5 and translated by 0.5,
// all other axes pass through unchanged.
var depthCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	// fovy is the vertical field of view in degrees.
	fovy   float32
	aspect float32
	near   float32
	far    float32
}

// Camera models a perspective viewpoint: a position/orientation triple
// (eye, target, up) plus projection parameters. It produces the combined
// view-projection matrix consumed by the vertex shader.
type Camera interface {
	// Eye retrieves the camera position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Target retrieves the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at target
	Target() mgl32.Vec3

	// Up retrieves the camera's up direction.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fovy retrieves the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: the field of view
	Fovy() float32

	// Aspect retrieves the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near retrieves the near clipping plane distance.
	//
	// Returns:
	//   - float32: the near plane
	Near() float32

	// Far retrieves the far clipping plane distance.
	//
	// Returns:
	//   - float32: the far plane
	Far() float32

	// SetEye moves the camera to a new world-space position.
	//
	// Parameters:
	//   - eye: the new eye position
	SetEye(eye mgl32.Vec3)

	// SetAspect updates the aspect ratio, typically after a window resize.
	//
	// Parameters:
	//   - aspect: the new aspect ratio (width / height)
	SetAspect(aspect float32)

	// BuildViewProjection computes the combined view-projection matrix:
	// a right-handed look-at view, a perspective projection, and the fixed
	// depth-range correction for WebGPU clip space.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major view-projection matrix
	BuildViewProjection() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the specified options applied over the
// defaults: eye (0, 1, 2), target at the origin, up +Y, 45 degree vertical
// field of view, aspect 1, near 0.1, far 100.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		eye:    mgl32.Vec3{0, 1, 2},
		target: mgl32.Vec3{0, 0, 0},
		up:     mgl32.Vec3{0, 1, 0},
		fovy:   45.0,
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fovy() float32 {
	return c.fovy
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) SetEye(eye mgl32.Vec3) {
	c.eye = eye
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
}

func (c *cameraImpl) BuildViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(c.eye, c.target, c.up)
	proj := mgl32.Perspective(mgl32.DegToRad(c.fovy), c.aspect, c.near, c.far)
	return depthCorrection.Mul4(proj).Mul4(view)
}
