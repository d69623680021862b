package scene

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calder-dev/pentaview/common"
	"github.com/calder-dev/pentaview/engine/camera"
	"github.com/calder-dev/pentaview/engine/mesh"
	"github.com/calder-dev/pentaview/engine/renderer"
	"github.com/calder-dev/pentaview/engine/renderer/bind_group_provider"
)

// fakeRenderer implements renderer.Renderer without a GPU. It records the
// calls the orchestrator makes and serves scripted BeginFrame errors.
type fakeRenderer struct {
	width, height int

	beginFrameErrs []error
	beginFrames    int

	resizeCalls [][2]int
	drawCalls   int
	endFrames   int
	presents    int

	pipelineRegistered bool
	writes             []bind_group_provider.BufferWrite
	callOrder          []string
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{width: 800, height: 600}
}

func (f *fakeRenderer) Device() *wgpu.Device              { return nil }
func (f *fakeRenderer) Queue() *wgpu.Queue                { return nil }
func (f *fakeRenderer) SurfaceFormat() wgpu.TextureFormat { return wgpu.TextureFormatRGBA8UnormSrgb }
func (f *fakeRenderer) Size() (int, int)                  { return f.width, f.height }

func (f *fakeRenderer) Resize(width, height int) {
	f.callOrder = append(f.callOrder, "resize")
	f.resizeCalls = append(f.resizeCalls, [2]int{width, height})
	if width > 0 && height > 0 {
		f.width, f.height = width, height
	}
}

func (f *fakeRenderer) RegisterPipeline() error {
	f.pipelineRegistered = true
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (f *fakeRenderer) InitTexture(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) InitMaterialBindGroup(provider bind_group_provider.BindGroupProvider) error {
	return nil
}

func (f *fakeRenderer) InitCameraBindGroup(provider bind_group_provider.BindGroupProvider, size uint64) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeRenderer) BeginFrame() error {
	f.callOrder = append(f.callOrder, "begin")
	f.beginFrames++
	if len(f.beginFrameErrs) > 0 {
		err := f.beginFrameErrs[0]
		f.beginFrameErrs = f.beginFrameErrs[1:]
		return err
	}
	return nil
}

func (f *fakeRenderer) DrawCall(meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	f.callOrder = append(f.callOrder, "draw")
	f.drawCalls++
}

func (f *fakeRenderer) EndFrame() {
	f.callOrder = append(f.callOrder, "end")
	f.endFrames++
}

func (f *fakeRenderer) Present() {
	f.callOrder = append(f.callOrder, "present")
	f.presents++
}

func (f *fakeRenderer) Release() {}

func newTestState(t *testing.T, f *fakeRenderer) State {
	t.Helper()

	cam := camera.NewCamera(camera.WithAspect(float32(f.width) / float32(f.height)))
	ctrl := camera.NewCameraController()
	m := mesh.NewPentagon(common.TextureStagingData{
		Pixels: make([]byte, 4*4*4),
		Width:  4,
		Height: 4,
	})

	s, err := NewState(f, cam, ctrl, m, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNewStateInitializesResources(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)

	assert.True(t, f.pipelineRegistered)
	assert.Equal(t, FramePhaseIdle, s.Phase())

	// The initial camera uniform is written during construction.
	require.NotEmpty(t, f.writes)
	assert.Len(t, f.writes[0].Data, 64)
	assert.Equal(t, uint64(0), f.writes[0].Offset)
}

func TestRenderHappyPath(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)

	require.NoError(t, s.Render())

	assert.Equal(t, FramePhasePresented, s.Phase())
	assert.Equal(t, []string{"begin", "draw", "end", "present"}, f.callOrder)
}

func TestRenderSurfaceLostRecovery(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)
	f.beginFrameErrs = []error{renderer.ErrSurfaceLost}

	require.NoError(t, s.Render(), "a lost surface is not fatal")

	// Exactly one reconfigure, at the current surface size, and no draw.
	require.Len(t, f.resizeCalls, 1)
	assert.Equal(t, [2]int{800, 600}, f.resizeCalls[0])
	assert.Zero(t, f.drawCalls)
	assert.Zero(t, f.presents)
	assert.Equal(t, FramePhaseIdle, s.Phase())

	// The next frame renders normally without further reconfiguration.
	require.NoError(t, s.Render())
	assert.Len(t, f.resizeCalls, 1)
	assert.Equal(t, 1, f.drawCalls)
	assert.Equal(t, 1, f.presents)
}

func TestRenderOutOfMemoryIsFatal(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)
	f.beginFrameErrs = []error{renderer.ErrSurfaceOutOfMemory}

	err := s.Render()
	require.Error(t, err)
	assert.True(t, errors.Is(err, renderer.ErrSurfaceOutOfMemory))
	assert.Zero(t, f.drawCalls)
	assert.Empty(t, f.resizeCalls)
}

func TestRenderOtherErrorSkipsFrame(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)
	f.beginFrameErrs = []error{errors.New("transient validation failure")}

	require.NoError(t, s.Render(), "unclassified acquisition errors are skipped")

	assert.Zero(t, f.drawCalls)
	assert.Empty(t, f.resizeCalls)
	assert.Equal(t, FramePhaseIdle, s.Phase())

	require.NoError(t, s.Render())
	assert.Equal(t, 1, f.drawCalls)
}

func TestUpdateUploadsUniform(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)
	initialWrites := len(f.writes)

	s.Update()

	require.Len(t, f.writes, initialWrites+1)
	assert.Len(t, f.writes[initialWrites].Data, 64)
	assert.Equal(t, FramePhaseIdle, s.Phase())
}

func TestUpdateAppliesMovement(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)
	start := s.Camera().Eye()

	require.True(t, s.Input(InputEvent{Kind: EventKey, Key: common.KeyW, Pressed: true}))
	s.Update()

	assert.NotEqual(t, start, s.Camera().Eye())
}

func TestResizeUpdatesAspect(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)

	s.Resize(1600, 900)

	require.Len(t, f.resizeCalls, 1)
	assert.Equal(t, [2]int{1600, 900}, f.resizeCalls[0])
	assert.InDelta(t, 1600.0/900.0, s.Camera().Aspect(), 1e-6)
}

func TestResizeZeroKeepsAspect(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)
	before := s.Camera().Aspect()

	// Minimized window: the renderer ignores the request and the aspect
	// ratio must not become NaN or zero.
	s.Resize(0, 0)

	assert.InDelta(t, float64(before), float64(s.Camera().Aspect()), 1e-6)
}

func TestInputRouting(t *testing.T) {
	f := newFakeRenderer()
	s := newTestState(t, f)

	assert.True(t, s.Input(InputEvent{Kind: EventKey, Key: common.KeyA, Pressed: true}))
	assert.False(t, s.Input(InputEvent{Kind: EventKey, Key: common.KeyEsc, Pressed: true}))
	assert.True(t, s.Input(InputEvent{Kind: EventPointerMove, X: 10, Y: 20}))
}
