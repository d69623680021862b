package mesh

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is the CPU-side layout of one mesh vertex as consumed by the vertex
// shader: a world-space position at shader location 0 and a texture coordinate
// at location 1. Field order matches the GPU attribute offsets, 20 bytes per
// vertex.
type Vertex struct {
	Position  [3]float32
	TexCoords [2]float32
}

// VertexBufferLayout describes the Vertex struct to the render pipeline.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(Vertex{}.Position)),
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         uint64(unsafe.Offsetof(Vertex{}.TexCoords)),
				ShaderLocation: 1,
			},
		},
	}
}
