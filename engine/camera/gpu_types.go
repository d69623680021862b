package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform mirrors the camera uniform block consumed by the vertex
// shader: a single column-major mat4x4<f32> view-projection matrix.
// WGSL struct layout (uniform address space):
//
//	struct CameraUniform {
//	    view_proj: mat4x4<f32>,  // offset 0, 64 bytes
//	};
type GPUCameraUniform struct {
	ViewProj [16]float32
}

// NewGPUCameraUniform creates a camera uniform holding the identity matrix,
// the value the shader sees before the first camera update is uploaded.
//
// Returns:
//   - *GPUCameraUniform: the identity-initialized uniform
func NewGPUCameraUniform() *GPUCameraUniform {
	return &GPUCameraUniform{
		ViewProj: [16]float32{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
	}
}

// Update refreshes the uniform from the camera's current view-projection matrix.
//
// Parameters:
//   - cam: the camera to read
func (u *GPUCameraUniform) Update(cam Camera) {
	u.ViewProj = [16]float32(cam.BuildViewProjection())
}

// Size returns the byte size of the uniform block.
//
// Returns:
//   - int: the size in bytes
func (u *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniform to little-endian bytes matching the WGSL
// layout, suitable for a queue write at offset 0 of the uniform buffer.
//
// Returns:
//   - []byte: the serialized uniform data
func (u *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, u.Size())
	for i, f := range u.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
