package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera()

	assert.Equal(t, mgl32.Vec3{0, 1, 2}, cam.Eye())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up())
	assert.InDelta(t, 45.0, cam.Fovy(), 1e-6)
	assert.InDelta(t, 1.0, cam.Aspect(), 1e-6)
	assert.InDelta(t, 0.1, cam.Near(), 1e-6)
	assert.InDelta(t, 100.0, cam.Far(), 1e-6)
}

func TestBuildViewProjectionFinite(t *testing.T) {
	cases := []struct {
		name string
		opts []CameraBuilderOption
	}{
		{"defaults", nil},
		{"wide aspect", []CameraBuilderOption{WithAspect(1920.0 / 1080.0)}},
		{"tall aspect", []CameraBuilderOption{WithAspect(0.5)}},
		{"narrow fov", []CameraBuilderOption{WithFovy(10)}},
		{"far eye", []CameraBuilderOption{WithEye(mgl32.Vec3{30, 15, 60})}},
		{"offset target", []CameraBuilderOption{
			WithEye(mgl32.Vec3{5, 5, 5}),
			WithTarget(mgl32.Vec3{1, 2, 3}),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewCamera(tc.opts...).BuildViewProjection()
			for i, v := range m {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("matrix element %d is not finite: %v", i, v)
				}
			}
		})
	}
}

// projectDepth runs a world-space point through the view-projection matrix and
// returns its normalized device depth (z divided by w).
func projectDepth(t *testing.T, m mgl32.Mat4, p mgl32.Vec3) float32 {
	t.Helper()
	clip := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
	require.NotZero(t, clip.W(), "projected point has zero w")
	return clip.Z() / clip.W()
}

func TestDepthRangeCorrection(t *testing.T) {
	cam := NewCamera(
		WithEye(mgl32.Vec3{0, 1, 2}),
		WithTarget(mgl32.Vec3{0, 0, 0}),
		WithUp(mgl32.Vec3{0, 1, 0}),
		WithAspect(1.125),
		WithFovy(45),
		WithNear(0.1),
		WithFar(100),
	)
	m := cam.BuildViewProjection()

	viewDir := cam.Target().Sub(cam.Eye()).Normalize()
	nearPoint := cam.Eye().Add(viewDir.Mul(cam.Near()))
	farPoint := cam.Eye().Add(viewDir.Mul(cam.Far()))

	assert.InDelta(t, 0.0, projectDepth(t, m, nearPoint), 1e-4,
		"near plane should map to depth 0")
	assert.InDelta(t, 1.0, projectDepth(t, m, farPoint), 1e-4,
		"far plane should map to depth 1")
}

func TestDepthIsMonotonic(t *testing.T) {
	cam := NewCamera(WithAspect(1.125))
	m := cam.BuildViewProjection()
	viewDir := cam.Target().Sub(cam.Eye()).Normalize()

	prev := float32(-1)
	for _, dist := range []float32{0.1, 0.5, 1, 5, 20, 100} {
		d := projectDepth(t, m, cam.Eye().Add(viewDir.Mul(dist)))
		assert.Greater(t, d, prev, "depth should increase with distance (dist %v)", dist)
		assert.GreaterOrEqual(t, d, float32(-1e-4))
		assert.LessOrEqual(t, d, float32(1+1e-4))
		prev = d
	}
}

func TestSetAspectChangesProjection(t *testing.T) {
	cam := NewCamera()
	before := cam.BuildViewProjection()

	cam.SetAspect(800.0 / 600.0)
	after := cam.BuildViewProjection()

	assert.NotEqual(t, before, after)
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-6)
}

func TestSetEyeMovesView(t *testing.T) {
	cam := NewCamera()
	before := cam.BuildViewProjection()

	cam.SetEye(mgl32.Vec3{0, 1, 4})
	after := cam.BuildViewProjection()

	assert.Equal(t, mgl32.Vec3{0, 1, 4}, cam.Eye())
	assert.NotEqual(t, before, after)
}
