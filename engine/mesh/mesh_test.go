package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-dev/pentaview/common"
)

func newTestPentagon() Mesh {
	return NewPentagon(common.TextureStagingData{
		Pixels: make([]byte, 4*4*4),
		Width:  4,
		Height: 4,
	})
}

func TestPentagonIndexFan(t *testing.T) {
	m := newTestPentagon()

	expected := []uint32{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
	}
	assert.Equal(t, expected, m.Indices())
	assert.Equal(t, 9, m.IndexCount())

	// Every triangle in the fan is anchored at vertex 4.
	indices := m.Indices()
	for tri := 0; tri < len(indices); tri += 3 {
		assert.Equal(t, uint32(4), indices[tri+2], "triangle %d not anchored at vertex 4", tri/3)
	}
}

func TestPentagonGeometry(t *testing.T) {
	m := newTestPentagon()

	verts := m.Vertices()
	require.Len(t, verts, 5)

	for i, v := range verts {
		assert.Zero(t, v.Position[2], "vertex %d should be coplanar at z=0", i)
		assert.GreaterOrEqual(t, v.TexCoords[0], float32(0), "vertex %d u out of range", i)
		assert.LessOrEqual(t, v.TexCoords[0], float32(1), "vertex %d u out of range", i)
		assert.GreaterOrEqual(t, v.TexCoords[1], float32(0), "vertex %d v out of range", i)
		assert.LessOrEqual(t, v.TexCoords[1], float32(1), "vertex %d v out of range", i)
	}
}

func TestMeshUploadData(t *testing.T) {
	m := newTestPentagon()

	// 5 vertices of 20 bytes, 9 uint32 indices of 4 bytes.
	assert.Len(t, m.VertexData(), 100)
	assert.Len(t, m.IndexData(), 36)

	// Index byte length satisfies the 4-byte alignment queue writes require.
	assert.Zero(t, len(m.IndexData())%4)
}

func TestVertexBufferLayout(t *testing.T) {
	layout := VertexBufferLayout()

	assert.Equal(t, uint64(20), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)

	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
}

func TestMeshProviders(t *testing.T) {
	m := newTestPentagon()

	require.NotNil(t, m.MeshProvider())
	require.NotNil(t, m.MaterialProvider())
	assert.Equal(t, "pentagon_mesh", m.MeshProvider().Label())
	assert.Equal(t, "pentagon_material", m.MaterialProvider().Label())
	assert.Equal(t, "pentagon", m.Name())
}
