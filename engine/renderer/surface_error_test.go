package renderer

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassifySurfaceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want SurfaceErrorKind
	}{
		{"nil", nil, SurfaceErrorNone},
		{"lost sentinel", ErrSurfaceLost, SurfaceErrorLost},
		{"oom sentinel", ErrSurfaceOutOfMemory, SurfaceErrorOutOfMemory},
		{"timeout sentinel", ErrSurfaceTimeout, SurfaceErrorOther},
		{"unmarked", errors.New("validation error"), SurfaceErrorOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySurfaceError(tc.err))
		})
	}
}

func TestMarkSurfaceError(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		sentinel error
	}{
		{"lost", "Surface lost, needs reconfiguration", ErrSurfaceLost},
		{"outdated folds into lost", "surface is Outdated", ErrSurfaceLost},
		{"out of memory", "Out of memory acquiring next texture", ErrSurfaceOutOfMemory},
		{"timeout", "timed out waiting for surface", ErrSurfaceTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			marked := markSurfaceError(errors.New(tc.raw))
			assert.True(t, errors.Is(marked, tc.sentinel))
			// The original message survives for logging.
			assert.Contains(t, marked.Error(), tc.raw)
		})
	}
}

func TestMarkSurfaceErrorPassthrough(t *testing.T) {
	assert.NoError(t, markSurfaceError(nil))

	raw := errors.New("some validation failure")
	marked := markSurfaceError(raw)
	assert.False(t, errors.Is(marked, ErrSurfaceLost))
	assert.False(t, errors.Is(marked, ErrSurfaceOutOfMemory))
	assert.Equal(t, SurfaceErrorOther, ClassifySurfaceError(marked))
}

func TestSurfaceErrorKindString(t *testing.T) {
	assert.Equal(t, "none", SurfaceErrorNone.String())
	assert.Equal(t, "lost", SurfaceErrorLost.String())
	assert.Equal(t, "out_of_memory", SurfaceErrorOutOfMemory.String())
	assert.Equal(t, "other", SurfaceErrorOther.String())
}
