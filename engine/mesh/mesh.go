package mesh

import (
	"github.com/calder-dev/pentaview/common"
	"github.com/calder-dev/pentaview/engine/renderer/bind_group_provider"
)

// pentagonVertices is the fixed geometry: five coplanar vertices at z=0 with
// texture coordinates mapping the pentagon onto the diffuse image.
var pentagonVertices = []Vertex{
	{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, TexCoords: [2]float32{0.4131759, 0.00759614}},
	{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, TexCoords: [2]float32{0.0048659444, 0.43041353}},
	{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, TexCoords: [2]float32{0.28081453, 0.94939706}},
	{Position: [3]float32{0.35966998, -0.3473291, 0.0}, TexCoords: [2]float32{0.85967, 0.8473291}},
	{Position: [3]float32{0.44147372, 0.2347359, 0.0}, TexCoords: [2]float32{0.9414737, 0.2652641}},
}

// pentagonIndices triangulates the pentagon as a fan anchored at vertex 4.
var pentagonIndices = []uint32{
	0, 1, 4,
	1, 2, 4,
	2, 3, 4,
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name             string
	vertices         []Vertex
	indices          []uint32
	texture          common.TextureStagingData
	sampler          common.SamplerStagingData
	meshProvider     bind_group_provider.BindGroupProvider
	materialProvider bind_group_provider.BindGroupProvider
}

// Mesh is a GPU-ready static geometry container: fixed vertex and index data
// plus the staged texture it is drawn with. Geometry is immutable after
// construction; the Renderer uploads it once through the providers.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Vertices retrieves the vertex array.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices retrieves the triangle index array.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// VertexData returns the raw vertex bytes for GPU upload.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index bytes for GPU upload.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices submitted per draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Texture retrieves the staged diffuse texture pixels.
	//
	// Returns:
	//   - common.TextureStagingData: the decoded texture
	Texture() common.TextureStagingData

	// Sampler retrieves the staged sampler configuration.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	Sampler() common.SamplerStagingData

	// MeshProvider retrieves the provider holding the vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// MaterialProvider retrieves the provider holding the diffuse texture view,
	// sampler and material bind group.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the material provider
	MaterialProvider() bind_group_provider.BindGroupProvider

	// Release releases the GPU resources held by both providers.
	Release()
}

var _ Mesh = &mesh{}

// NewPentagon creates the viewer's fixed pentagon mesh with the given diffuse
// texture. The five vertices and nine fan indices never change; only the
// texture content varies between instances.
//
// Parameters:
//   - texture: decoded RGBA pixels for the diffuse texture
//
// Returns:
//   - Mesh: the pentagon mesh, ready for renderer initialization
func NewPentagon(texture common.TextureStagingData) Mesh {
	return &mesh{
		name:             "pentagon",
		vertices:         pentagonVertices,
		indices:          pentagonIndices,
		texture:          texture,
		meshProvider:     bind_group_provider.NewBindGroupProvider("pentagon_mesh"),
		materialProvider: bind_group_provider.NewBindGroupProvider("pentagon_material"),
	}
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []Vertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) VertexData() []byte {
	return common.SliceToBytes(m.vertices)
}

func (m *mesh) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) Texture() common.TextureStagingData {
	return m.texture
}

func (m *mesh) Sampler() common.SamplerStagingData {
	return m.sampler
}

func (m *mesh) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *mesh) MaterialProvider() bind_group_provider.BindGroupProvider {
	return m.materialProvider
}

func (m *mesh) Release() {
	m.meshProvider.Release()
	m.materialProvider.Release()
}
