package renderer

import (
	"go.uber.org/zap"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option for configuring a wgpuRenderer.
type RendererBuilderOption func(*wgpuRenderer)

// WithPresentMode sets how finished frames are delivered to the display.
// The default is PresentModeVSync.
//
// Parameters:
//   - mode: the present mode to use
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		switch mode {
		case PresentModeUncapped:
			r.config.presentMode = wgpu.PresentModeImmediate
		default:
			r.config.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithForceFallbackAdapter forces adapter selection to the software fallback,
// useful on machines without a usable hardware adapter.
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithForceFallbackAdapter() RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.forceFallbackAdapter = true
	}
}

// WithLogger sets the structured logger used for renderer diagnostics.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithLogger(log *zap.Logger) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.log = log
	}
}
