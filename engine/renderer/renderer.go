package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/calder-dev/pentaview/common"
	"github.com/calder-dev/pentaview/engine/renderer/bind_group_provider"
	"github.com/calder-dev/pentaview/engine/window"
)

// PresentMode controls how finished frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes presentation with the display refresh (Fifo).
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents immediately without waiting for vertical blank.
	PresentModeUncapped
)

// Shader binding indices for the fixed pipeline. Group 0 is the material
// (diffuse texture + sampler, fragment stage), group 1 is the camera uniform
// (vertex stage).
const (
	TextureBinding       = 0
	SamplerBinding       = 1
	CameraUniformBinding = 0
)

// Renderer drives a WebGPU device and surface: surface configuration and
// recovery, per-component GPU resource initialization, and the per-frame
// acquire/record/submit/present cycle. All methods must be called from the
// thread that owns the window's message loop.
type Renderer interface {
	// Device retrieves the WebGPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue retrieves the device's default queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// SurfaceFormat retrieves the texture format the surface was configured with.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	SurfaceFormat() wgpu.TextureFormat

	// Size retrieves the dimensions the surface is currently configured at.
	//
	// Returns:
	//   - width, height: the surface size in pixels
	Size() (width, height int)

	// Resize reconfigures the surface for new framebuffer dimensions.
	// A zero width or height (minimized window) leaves the surface untouched.
	// Calling it again with the current size reapplies the same configuration,
	// which is also how a lost surface is recovered.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	// RegisterPipeline creates the fixed render pipeline: the embedded WGSL
	// shader pair, triangle-list topology, back-face culling, a single color
	// target in the surface format, no depth testing.
	//
	// Returns:
	//   - error: an error if any pipeline object could not be created
	RegisterPipeline() error

	// InitMeshBuffers creates and uploads the vertex and index buffers for a
	// mesh and stores them on the given provider.
	//
	// Parameters:
	//   - provider: the provider to hold the created buffers
	//   - vertexData: raw vertex bytes
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices per draw
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitTexture creates an sRGB texture from staged RGBA pixels, uploads the
	// pixel data, and stores the resulting view on the provider.
	//
	// Parameters:
	//   - provider: the provider to hold the texture view
	//   - binding: the binding index within the material group
	//   - stagingData: the decoded pixels with dimensions
	//
	// Returns:
	//   - error: an error if the texture could not be created
	InitTexture(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it on the provider. Zero-valued
	// staging fields fall back to clamped addressing with linear filtering.
	//
	// Parameters:
	//   - provider: the provider to hold the sampler
	//   - binding: the binding index within the material group
	//   - stagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if the sampler could not be created
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.SamplerStagingData) error

	// InitMaterialBindGroup creates the group 0 bind group from the texture
	// view and sampler already stored on the provider.
	//
	// Parameters:
	//   - provider: the material provider, with texture and sampler initialized
	//
	// Returns:
	//   - error: an error if the bind group could not be created
	InitMaterialBindGroup(provider bind_group_provider.BindGroupProvider) error

	// InitCameraBindGroup creates the camera uniform buffer and its group 1
	// bind group, storing both on the provider.
	//
	// Parameters:
	//   - provider: the camera provider
	//   - size: the uniform buffer size in bytes
	//
	// Returns:
	//   - error: an error if the buffer or bind group could not be created
	InitCameraBindGroup(provider bind_group_provider.BindGroupProvider, size uint64) error

	// WriteBuffers queues buffer writes for providers that have an initialized
	// buffer at the targeted binding. Writes for missing buffers are skipped.
	//
	// Parameters:
	//   - writes: the buffer writes to queue
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and opens a render pass
	// that clears it to the background color. Acquisition failures are marked
	// with the surface error sentinels for classification by the caller.
	//
	// Returns:
	//   - error: the marked acquisition error, or nil
	BeginFrame() error

	// DrawCall records one indexed draw of the mesh with the given bind groups
	// into the open render pass.
	//
	// Parameters:
	//   - meshProvider: the provider holding the vertex/index buffers
	//   - bindGroups: providers whose bind groups are set at group indices 0..n
	DrawCall(meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the render pass and submits the recorded commands.
	EndFrame()

	// Present presents the frame acquired by BeginFrame and releases the
	// surface texture.
	Present()

	// Release releases the pipeline, layouts, device and surface.
	Release()
}

// NewRenderer creates a Renderer over the given window's surface: it creates
// the WebGPU instance and surface, requests an adapter compatible with the
// surface and a device from it, then configures the surface at the window's
// framebuffer size.
//
// Parameters:
//   - win: the window to render into
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the adapter or device could not be acquired
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	return newWGPURenderer(win, options...)
}
