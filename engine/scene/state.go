package scene

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/calder-dev/pentaview/engine/camera"
	"github.com/calder-dev/pentaview/engine/mesh"
	"github.com/calder-dev/pentaview/engine/renderer"
	"github.com/calder-dev/pentaview/engine/renderer/bind_group_provider"
)

// FramePhase identifies where the orchestrator is within one frame's
// lifecycle. Phases advance strictly in order; every frame ends back at
// FramePhaseIdle whether it presented or was skipped.
type FramePhase int

const (
	// FramePhaseIdle means no frame is in flight.
	FramePhaseIdle FramePhase = iota
	// FramePhaseUpdating covers camera movement and uniform upload.
	FramePhaseUpdating
	// FramePhaseAcquiring covers surface texture acquisition.
	FramePhaseAcquiring
	// FramePhaseRecording covers render pass recording.
	FramePhaseRecording
	// FramePhaseSubmitting covers command submission.
	FramePhaseSubmitting
	// FramePhasePresented means the frame was handed to the display.
	FramePhasePresented
)

// String returns the phase name for logging.
func (p FramePhase) String() string {
	switch p {
	case FramePhaseIdle:
		return "idle"
	case FramePhaseUpdating:
		return "updating"
	case FramePhaseAcquiring:
		return "acquiring"
	case FramePhaseRecording:
		return "recording"
	case FramePhaseSubmitting:
		return "submitting"
	case FramePhasePresented:
		return "presented"
	default:
		return "unknown"
	}
}

// InputEventKind discriminates the input event variants routed through Input.
type InputEventKind int

const (
	// EventKey is a key press or release.
	EventKey InputEventKind = iota
	// EventPointerMove is a cursor position change.
	EventPointerMove
)

// InputEvent is one window input event routed to the state.
type InputEvent struct {
	Kind    InputEventKind
	Key     uint32
	Pressed bool
	X, Y    int32
}

// stateImpl is the implementation of the State interface.
type stateImpl struct {
	renderer   renderer.Renderer
	camera     camera.Camera
	controller camera.CameraController
	mesh       mesh.Mesh

	uniform        *camera.GPUCameraUniform
	cameraProvider bind_group_provider.BindGroupProvider

	phase FramePhase
	log   *zap.Logger
}

// State is the frame orchestrator: it owns the camera, its controller, the
// mesh and the camera uniform, routes input, and drives the renderer through
// exactly one frame per Update/Render pair. It runs on the window's message
// loop thread; nothing here is safe for concurrent use.
type State interface {
	// Input routes a window input event.
	//
	// Parameters:
	//   - ev: the event to route
	//
	// Returns:
	//   - bool: true if the event was consumed
	Input(ev InputEvent) bool

	// Resize reconfigures the surface and updates the camera's aspect ratio.
	// Zero-sized requests are ignored by the renderer; the aspect ratio is
	// only updated for usable sizes.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	// Update advances the camera one movement step and uploads the refreshed
	// view-projection uniform.
	Update()

	// Render draws one frame, leaving the phase at FramePhasePresented on
	// success and FramePhaseIdle on a skipped frame. A lost surface is
	// recovered by reconfiguring at the current size and skipping the frame;
	// GPU memory exhaustion is returned as a fatal error; any other
	// acquisition failure is logged and the frame skipped.
	//
	// Returns:
	//   - error: a fatal error, or nil (including for skipped frames)
	Render() error

	// Phase retrieves the current frame phase.
	//
	// Returns:
	//   - FramePhase: the phase
	Phase() FramePhase

	// Camera retrieves the camera owned by this state.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Release releases the GPU resources owned by this state.
	Release()
}

var _ State = &stateImpl{}

// NewState wires the scene's GPU resources: it registers the render pipeline,
// uploads the mesh geometry and texture, creates the material and camera bind
// groups, and writes the initial camera uniform.
//
// Parameters:
//   - r: the renderer to drive
//   - cam: the camera
//   - ctrl: the camera controller
//   - m: the mesh to draw
//   - log: the structured logger
//
// Returns:
//   - State: the initialized orchestrator
//   - error: an error if any GPU resource could not be created
func NewState(r renderer.Renderer, cam camera.Camera, ctrl camera.CameraController, m mesh.Mesh, log *zap.Logger) (State, error) {
	if log == nil {
		log = zap.NewNop()
	}

	s := &stateImpl{
		renderer:       r,
		camera:         cam,
		controller:     ctrl,
		mesh:           m,
		uniform:        camera.NewGPUCameraUniform(),
		cameraProvider: bind_group_provider.NewBindGroupProvider("camera"),
		phase:          FramePhaseIdle,
		log:            log,
	}

	if err := r.RegisterPipeline(); err != nil {
		return nil, errors.Wrap(err, "registering render pipeline")
	}

	if err := r.InitMeshBuffers(m.MeshProvider(), m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		return nil, errors.Wrapf(err, "initializing mesh buffers for %s", m.Name())
	}
	if err := r.InitTexture(m.MaterialProvider(), renderer.TextureBinding, m.Texture()); err != nil {
		return nil, errors.Wrapf(err, "initializing texture for %s", m.Name())
	}
	if err := r.InitSampler(m.MaterialProvider(), renderer.SamplerBinding, m.Sampler()); err != nil {
		return nil, errors.Wrapf(err, "initializing sampler for %s", m.Name())
	}
	if err := r.InitMaterialBindGroup(m.MaterialProvider()); err != nil {
		return nil, errors.Wrapf(err, "initializing material bind group for %s", m.Name())
	}

	s.uniform.Update(cam)
	if err := r.InitCameraBindGroup(s.cameraProvider, uint64(s.uniform.Size())); err != nil {
		return nil, errors.Wrap(err, "initializing camera bind group")
	}
	s.writeCameraUniform()

	return s, nil
}

func (s *stateImpl) Input(ev InputEvent) bool {
	switch ev.Kind {
	case EventKey:
		return s.controller.ProcessKey(ev.Key, ev.Pressed)
	case EventPointerMove:
		s.controller.ProcessPointerMove(ev.X, ev.Y)
		return true
	default:
		return false
	}
}

func (s *stateImpl) Resize(width, height int) {
	s.renderer.Resize(width, height)
	if width > 0 && height > 0 {
		s.camera.SetAspect(float32(width) / float32(height))
	}
}

func (s *stateImpl) Update() {
	s.phase = FramePhaseUpdating

	s.controller.UpdateCamera(s.camera)
	s.uniform.Update(s.camera)
	s.writeCameraUniform()

	s.phase = FramePhaseIdle
}

func (s *stateImpl) Render() error {
	s.phase = FramePhaseAcquiring

	if err := s.renderer.BeginFrame(); err != nil {
		s.phase = FramePhaseIdle

		switch renderer.ClassifySurfaceError(err) {
		case renderer.SurfaceErrorLost:
			// Reconfiguring at the current size restores the swapchain; the
			// next frame will acquire cleanly.
			w, h := s.renderer.Size()
			s.renderer.Resize(w, h)
			return nil
		case renderer.SurfaceErrorOutOfMemory:
			return errors.Wrap(err, "gpu memory exhausted")
		default:
			s.log.Warn("skipping frame", zap.Error(err))
			return nil
		}
	}

	s.phase = FramePhaseRecording
	s.renderer.DrawCall(s.mesh.MeshProvider(), []bind_group_provider.BindGroupProvider{
		s.mesh.MaterialProvider(),
		s.cameraProvider,
	})

	s.phase = FramePhaseSubmitting
	s.renderer.EndFrame()
	s.renderer.Present()

	s.phase = FramePhasePresented
	return nil
}

func (s *stateImpl) Phase() FramePhase {
	return s.phase
}

func (s *stateImpl) Camera() camera.Camera {
	return s.camera
}

func (s *stateImpl) Release() {
	s.mesh.Release()
	s.cameraProvider.Release()
}

func (s *stateImpl) writeCameraUniform() {
	s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: s.cameraProvider,
			Binding:  renderer.CameraUniformBinding,
			Offset:   0,
			Data:     s.uniform.Marshal(),
		},
	})
}
