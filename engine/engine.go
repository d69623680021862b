package engine

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/calder-dev/pentaview/engine/profiler"
	"github.com/calder-dev/pentaview/engine/scene"
	"github.com/calder-dev/pentaview/engine/window"
)

// engine implements the Engine interface. Everything runs on the window's
// message loop thread: input callbacks, the camera update, and rendering are
// interleaved cooperatively, one frame per loop iteration, so no
// synchronization is needed anywhere downstream.
type engine struct {
	window window.Window
	state  scene.State

	profiler         *profiler.Profiler
	profilingEnabled bool

	log *zap.Logger
}

// Engine drives the application: it owns the window and the scene state,
// wires window events into the state, and runs the main loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// State returns the scene state driven by this engine.
	//
	// Returns:
	//   - scene.State: the scene state
	State() scene.State

	// Run executes the main loop. Blocks until the window closes or a fatal
	// render error occurs.
	Run()

	// Quit closes the window, ending the main loop.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine with the specified options and wires the
// window's input, resize and per-frame callbacks into the scene state.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the configured engine
//   - error: an error if no window or scene state was provided
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		log: zap.NewNop(),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, errors.New("engine requires a window")
	}
	if e.state == nil {
		return nil, errors.New("engine requires a scene state")
	}

	e.profiler = profiler.NewProfiler(e.log)

	e.window.SetResizeCallback(func(width, height int) {
		e.state.Resize(width, height)
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.state.Input(scene.InputEvent{Kind: scene.EventKey, Key: keyCode, Pressed: true})
	})
	e.window.SetKeyUpCallback(func(keyCode uint32) {
		e.state.Input(scene.InputEvent{Kind: scene.EventKey, Key: keyCode, Pressed: false})
	})
	e.window.SetMouseMoveCallback(func(x, y int32) {
		e.state.Input(scene.InputEvent{Kind: scene.EventPointerMove, X: x, Y: y})
	})
	e.window.SetUpdateCallback(e.frame)

	return e, nil
}

// frame advances one cooperative loop iteration: camera update, uniform
// upload, then a full render. A fatal render error shuts the engine down.
func (e *engine) frame() {
	e.state.Update()

	if err := e.state.Render(); err != nil {
		e.log.Error("fatal render error", zap.Error(err))
		e.Quit()
		return
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) State() scene.State {
	return e.state
}

func (e *engine) Run() {
	e.log.Info("entering main loop")
	e.window.ProcessMessages()
	e.log.Info("main loop exited")
}

func (e *engine) Quit() {
	if err := e.window.Close(); err != nil {
		e.log.Warn("closing window", zap.Error(err))
	}
}
