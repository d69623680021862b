package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/calder-dev/pentaview/common"
)

func TestProcessKeyRouting(t *testing.T) {
	cc := NewCameraController()

	for _, key := range []uint32{
		common.KeyW, common.KeyA, common.KeyS, common.KeyD,
		common.KeyUp, common.KeyLeft, common.KeyDown, common.KeyRight,
	} {
		assert.True(t, cc.ProcessKey(key, true), "key %d should be handled", key)
		assert.True(t, cc.ProcessKey(key, false), "key %d release should be handled", key)
	}

	assert.False(t, cc.ProcessKey(common.KeyEsc, true))
	assert.False(t, cc.ProcessKey(32, true)) // space
	assert.False(t, cc.ProcessKey(70, true)) // F
}

func TestForwardNeverReachesTarget(t *testing.T) {
	cc := NewCameraController(WithSpeed(0.2))
	cam := NewCamera()

	cc.ProcessKey(common.KeyW, true)
	for i := 0; i < 200; i++ {
		cc.UpdateCamera(cam)
		dist := cam.Target().Sub(cam.Eye()).Len()
		assert.Greater(t, dist, float32(0), "iteration %d: eye reached target", i)
	}

	// Once inside one step of the target, forward input becomes a no-op.
	settled := cam.Eye()
	cc.UpdateCamera(cam)
	assert.Equal(t, settled, cam.Eye())
}

func TestForwardGuardWhenClose(t *testing.T) {
	cc := NewCameraController(WithSpeed(0.2))
	cam := NewCamera(WithEye(mgl32.Vec3{0, 0, 0.15}))

	cc.ProcessKey(common.KeyW, true)
	cc.UpdateCamera(cam)

	assert.Equal(t, mgl32.Vec3{0, 0, 0.15}, cam.Eye())
}

func TestBackwardStepsAway(t *testing.T) {
	cc := NewCameraController(WithSpeed(0.2))
	cam := NewCamera()
	start := cam.Target().Sub(cam.Eye()).Len()

	cc.ProcessKey(common.KeyS, true)
	cc.UpdateCamera(cam)

	dist := cam.Target().Sub(cam.Eye()).Len()
	assert.InDelta(t, float64(start+0.2), float64(dist), 1e-5)
}

func TestStrafePreservesDistance(t *testing.T) {
	for _, key := range []uint32{common.KeyA, common.KeyD} {
		cc := NewCameraController(WithSpeed(0.2))
		cam := NewCamera()

		cc.ProcessKey(key, true)
		for i := 0; i < 50; i++ {
			before := cam.Target().Sub(cam.Eye()).Len()
			cc.UpdateCamera(cam)
			after := cam.Target().Sub(cam.Eye()).Len()
			assert.InDelta(t, float64(before), float64(after), 1e-4,
				"key %d iteration %d: strafe changed orbit radius", key, i)
		}
	}
}

func TestStrafeActuallyMoves(t *testing.T) {
	cc := NewCameraController(WithSpeed(0.2))
	cam := NewCamera()
	start := cam.Eye()

	cc.ProcessKey(common.KeyD, true)
	cc.UpdateCamera(cam)

	assert.NotEqual(t, start, cam.Eye())
}

func TestReleaseStopsMovement(t *testing.T) {
	cc := NewCameraController()
	cam := NewCamera()

	cc.ProcessKey(common.KeyW, true)
	cc.UpdateCamera(cam)
	moved := cam.Eye()

	cc.ProcessKey(common.KeyW, false)
	cc.UpdateCamera(cam)

	assert.Equal(t, moved, cam.Eye())
}

func TestNoInputNoMovement(t *testing.T) {
	cc := NewCameraController()
	cam := NewCamera()
	start := cam.Eye()

	cc.UpdateCamera(cam)

	assert.Equal(t, start, cam.Eye())
}

func TestPointerPositionRecorded(t *testing.T) {
	cc := NewCameraController()

	cc.ProcessPointerMove(120, 340)
	x, y := cc.PointerPosition()

	assert.Equal(t, int32(120), x)
	assert.Equal(t, int32(340), y)

	cam := NewCamera()
	start := cam.Eye()
	cc.UpdateCamera(cam)
	assert.Equal(t, start, cam.Eye(), "pointer movement should not move the camera")
}
