package engine

import (
	"go.uber.org/zap"

	"github.com/calder-dev/pentaview/engine/scene"
	"github.com/calder-dev/pentaview/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the
// engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the pre-configured window the engine drives.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithState sets the scene state the engine updates and renders each frame.
//
// Parameters:
//   - s: the scene state
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithState(s scene.State) EngineBuilderOption {
	return func(e *engine) {
		e.state = s
	}
}

// WithProfiling enables or disables per-frame performance reporting.
//
// Parameters:
//   - enabled: if true, enables profiling output
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithLogger sets the structured logger used by the engine and profiler.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(log *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.log = log
	}
}
