package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestSurfaceConfigRejectsZeroSize(t *testing.T) {
	c := surfaceConfig{width: 800, height: 600, presentMode: wgpu.PresentModeFifo}

	assert.False(t, c.update(0, 600))
	assert.False(t, c.update(800, 0))
	assert.False(t, c.update(0, 0))
	assert.False(t, c.update(-1, 600))

	// A rejected update leaves the stored configuration intact.
	assert.Equal(t, 800, c.width)
	assert.Equal(t, 600, c.height)
}

func TestSurfaceConfigIdempotentReapply(t *testing.T) {
	c := surfaceConfig{presentMode: wgpu.PresentModeFifo}

	assert.True(t, c.update(1024, 768))
	first := c

	// Reapplying the current size is accepted (surface-loss recovery relies
	// on this) and produces an identical configuration.
	assert.True(t, c.update(1024, 768))
	assert.Equal(t, first, c)
}

func TestSurfaceConfigResize(t *testing.T) {
	c := surfaceConfig{presentMode: wgpu.PresentModeFifo}

	assert.True(t, c.update(800, 600))
	assert.True(t, c.update(1920, 1080))
	assert.Equal(t, 1920, c.width)
	assert.Equal(t, 1080, c.height)
	assert.Equal(t, wgpu.PresentModeFifo, c.presentMode)
}
