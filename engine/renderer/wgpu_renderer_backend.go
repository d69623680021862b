package renderer

import (
	_ "embed"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/calder-dev/pentaview/common"
	"github.com/calder-dev/pentaview/engine/mesh"
	"github.com/calder-dev/pentaview/engine/renderer/bind_group_provider"
	"github.com/calder-dev/pentaview/engine/window"
)

//go:embed shaders/pentagon.wgsl
var pentagonShaderSource string

// surfaceConfig tracks the surface dimensions and present mode last applied
// through Configure. It is the single source of truth for the surface state;
// a lost surface is recovered by reapplying it unchanged.
type surfaceConfig struct {
	width       int
	height      int
	presentMode wgpu.PresentMode
}

// update applies a resize request and reports whether the surface should be
// (re)configured. Requests with a zero or negative dimension, as delivered
// while the window is minimized, are rejected and leave the stored size
// untouched. Repeating the current size is accepted: reapplying an identical
// configuration is harmless and is exactly what surface-loss recovery needs.
func (c *surfaceConfig) update(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.width = width
	c.height = height
	return true
}

// wgpuRenderer is the wgpu-native implementation of the Renderer interface.
type wgpuRenderer struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	config        surfaceConfig
	surfaceFormat wgpu.TextureFormat

	forceFallbackAdapter bool

	// Fixed pipeline state, created once by RegisterPipeline.
	pipeline       *wgpu.RenderPipeline
	materialLayout *wgpu.BindGroupLayout
	cameraLayout   *wgpu.BindGroupLayout

	// Frame state held between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	log *zap.Logger
}

var _ Renderer = &wgpuRenderer{}

// newWGPURenderer builds the full GPU context: instance, surface, adapter,
// device and queue, then configures the surface at the window's framebuffer
// size. The calling goroutine is locked to its OS thread since wgpu-native
// surface operations are not thread-safe.
func newWGPURenderer(win window.Window, options ...RendererBuilderOption) (*wgpuRenderer, error) {
	runtime.LockOSThread()

	r := &wgpuRenderer{
		instance: wgpu.CreateInstance(nil),
		config: surfaceConfig{
			presentMode: wgpu.PresentModeFifo,
		},
		log: zap.NewNop(),
	}
	for _, opt := range options {
		opt(r)
	}

	surfaceDescriptor := win.SurfaceDescriptor()
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}
	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		return nil, errors.Wrap(err, "no compatible adapter available")
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "pentaview device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "device request failed")
	}
	r.device = device
	r.queue = device.GetQueue()

	if !r.config.update(win.Width(), win.Height()) {
		return nil, errors.Newf("window reported unusable framebuffer size %dx%d", win.Width(), win.Height())
	}
	r.configureSurface()

	r.log.Info("gpu context ready",
		zap.Uint32("surface_format", uint32(r.surfaceFormat)),
		zap.Int("width", r.config.width),
		zap.Int("height", r.config.height),
	)

	return r, nil
}

// configureSurface applies the stored surfaceConfig to the surface. The
// format and alpha mode are re-read from the adapter capabilities on every
// call, matching what the surface actually supports.
func (r *wgpuRenderer) configureSurface() {
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(r.config.width),
		Height:      uint32(r.config.height),
		PresentMode: r.config.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (r *wgpuRenderer) Device() *wgpu.Device {
	return r.device
}

func (r *wgpuRenderer) Queue() *wgpu.Queue {
	return r.queue
}

func (r *wgpuRenderer) SurfaceFormat() wgpu.TextureFormat {
	return r.surfaceFormat
}

func (r *wgpuRenderer) Size() (int, int) {
	return r.config.width, r.config.height
}

func (r *wgpuRenderer) Resize(width, height int) {
	if !r.config.update(width, height) {
		return
	}
	r.configureSurface()
}

func (r *wgpuRenderer) RegisterPipeline() error {
	shaderModule, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "pentagon shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: pentagonShaderSource,
		},
	})
	if err != nil {
		return errors.Wrap(err, "creating shader module")
	}
	defer shaderModule.Release()

	materialLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "material bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    TextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    SamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "creating material bind group layout")
	}
	r.materialLayout = materialLayout

	cameraLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "camera bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    CameraUniformBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "creating camera bind group layout")
	}
	r.cameraLayout = cameraLayout

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "pentagon pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{materialLayout, cameraLayout},
	})
	if err != nil {
		return errors.Wrap(err, "creating pipeline layout")
	}
	defer pipelineLayout.Release()

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "pentagon render pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{mesh.VertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: r.surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: nil,
	})
	if err != nil {
		return errors.Wrap(err, "creating render pipeline")
	}
	r.pipeline = pipeline

	return nil
}

func (r *wgpuRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	if len(vertexData) > 0 {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            provider.Label() + " vertex buffer",
			Size:             uint64(len(vertexData)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return errors.Wrapf(err, "creating vertex buffer for %s", provider.Label())
		}
		r.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            provider.Label() + " index buffer",
			Size:             uint64(len(indexData)),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return errors.Wrapf(err, "creating index buffer for %s", provider.Label())
		}
		r.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)

	return nil
}

func (r *wgpuRenderer) InitTexture(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return errors.Wrapf(err, "creating texture for %s", provider.Label())
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		return errors.Wrapf(err, "creating texture view for %s", provider.Label())
	}
	provider.SetTextureView(binding, view)

	return nil
}

func (r *wgpuRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.SamplerStagingData) error {
	samp, err := r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " sampler",
		AddressModeU:  common.Coalesce(stagingData.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(stagingData.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(stagingData.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(stagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(stagingData.MinFilter, wgpu.FilterModeNearest),
		MipmapFilter:  common.Coalesce(stagingData.MipmapFilter, wgpu.MipmapFilterModeNearest),
		LodMinClamp:   common.Coalesce(stagingData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(stagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(stagingData.MaxAnisotropy, 1),
		Compare:       stagingData.Compare,
	})
	if err != nil {
		return errors.Wrapf(err, "creating sampler for %s", provider.Label())
	}
	provider.SetSampler(binding, samp)

	return nil
}

func (r *wgpuRenderer) InitMaterialBindGroup(provider bind_group_provider.BindGroupProvider) error {
	if r.materialLayout == nil {
		return errors.New("pipeline not registered")
	}

	tv := provider.TextureView(TextureBinding)
	if tv == nil {
		return errors.Newf("material %s has no texture view, call InitTexture first", provider.Label())
	}
	samp := provider.Sampler(SamplerBinding)
	if samp == nil {
		return errors.Newf("material %s has no sampler, call InitSampler first", provider.Label())
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " bind group",
		Layout: r.materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     TextureBinding,
				TextureView: tv,
			},
			{
				Binding: SamplerBinding,
				Sampler: samp,
			},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "creating bind group for %s", provider.Label())
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

func (r *wgpuRenderer) InitCameraBindGroup(provider bind_group_provider.BindGroupProvider, size uint64) error {
	if r.cameraLayout == nil {
		return errors.New("pipeline not registered")
	}

	buf := provider.Buffer(CameraUniformBinding)
	if buf == nil {
		var err error
		buf, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " uniform buffer",
			Size:  size,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return errors.Wrapf(err, "creating uniform buffer for %s", provider.Label())
		}
		provider.SetBuffer(CameraUniformBinding, buf)
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " bind group",
		Layout: r.cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: CameraUniformBinding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "creating bind group for %s", provider.Label())
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

func (r *wgpuRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		r.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (r *wgpuRenderer) BeginFrame() error {
	// If a previous frame's surface texture is still held, acquiring another
	// would trip wgpu-native validation ("Surface image is already acquired").
	if r.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return markSurfaceError(err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return markSurfaceError(err)
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return markSurfaceError(err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          view,
				ResolveTarget: nil,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: 0.1, G: 0.1, B: 0.1, A: 1.0,
				},
			},
		},
	})

	r.frameEncoder = encoder
	r.framePass = pass
	r.frameSurface = surfaceTexture
	r.frameView = view

	return nil
}

func (r *wgpuRenderer) DrawCall(meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	r.framePass.SetPipeline(r.pipeline)

	for i, bg := range bindGroups {
		r.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	r.framePass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	r.framePass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	r.framePass.DrawIndexed(uint32(meshProvider.IndexCount()), 1, 0, 0, 0)
}

func (r *wgpuRenderer) EndFrame() {
	r.framePass.End()

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.log.Error("finishing command encoder", zap.Error(err))
		r.frameEncoder.Release()
		r.frameView.Release()
		r.frameSurface.Release()
		r.frameEncoder = nil
		r.framePass = nil
		r.frameSurface = nil
		r.frameView = nil
		return
	}

	r.queue.Submit(commandBuffer)

	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil
	r.framePass = nil
}

func (r *wgpuRenderer) Present() {
	if r.frameSurface == nil {
		return
	}

	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}

func (r *wgpuRenderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.materialLayout != nil {
		r.materialLayout.Release()
		r.materialLayout = nil
	}
	if r.cameraLayout != nil {
		r.cameraLayout.Release()
		r.cameraLayout = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}
