package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformStartsAsIdentity(t *testing.T) {
	u := NewGPUCameraUniform()

	identity := [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	assert.Equal(t, identity, u.ViewProj)
}

func TestUniformUpdateMirrorsCamera(t *testing.T) {
	cam := NewCamera(WithAspect(1.125))
	u := NewGPUCameraUniform()

	u.Update(cam)

	assert.Equal(t, [16]float32(cam.BuildViewProjection()), u.ViewProj)
}

func TestUniformMarshalLayout(t *testing.T) {
	u := NewGPUCameraUniform()
	u.ViewProj[0] = 2.5
	u.ViewProj[15] = -1.25

	data := u.Marshal()
	require.Len(t, data, 64)
	assert.Equal(t, 64, u.Size())

	first := math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	last := math.Float32frombits(binary.LittleEndian.Uint32(data[60:64]))
	assert.Equal(t, float32(2.5), first)
	assert.Equal(t, float32(-1.25), last)
}
