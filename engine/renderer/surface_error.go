package renderer

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the surface texture acquisition failure classes.
// Raw backend errors are marked with these via markSurfaceError, so callers
// can branch with errors.Is without depending on wgpu-native message text.
var (
	// ErrSurfaceLost marks acquisition failures where the swapchain no longer
	// matches the surface (lost or outdated). Recoverable by reconfiguring
	// the surface at its current size.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrSurfaceOutOfMemory marks acquisition failures caused by GPU memory
	// exhaustion. Not recoverable; the application must shut down.
	ErrSurfaceOutOfMemory = errors.New("surface out of memory")

	// ErrSurfaceTimeout marks acquisition failures where the next surface
	// texture did not become available in time. Transient; skip the frame.
	ErrSurfaceTimeout = errors.New("surface acquire timeout")
)

// SurfaceErrorKind is the coarse classification of a surface acquisition failure.
type SurfaceErrorKind int

const (
	// SurfaceErrorNone means acquisition succeeded.
	SurfaceErrorNone SurfaceErrorKind = iota
	// SurfaceErrorLost means the surface must be reconfigured and the frame skipped.
	SurfaceErrorLost
	// SurfaceErrorOutOfMemory means the application cannot continue rendering.
	SurfaceErrorOutOfMemory
	// SurfaceErrorOther covers transient failures; log and skip the frame.
	SurfaceErrorOther
)

// String returns the kind name for logging.
func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceErrorNone:
		return "none"
	case SurfaceErrorLost:
		return "lost"
	case SurfaceErrorOutOfMemory:
		return "out_of_memory"
	case SurfaceErrorOther:
		return "other"
	default:
		return "unknown"
	}
}

// ClassifySurfaceError maps an error returned by BeginFrame onto its
// SurfaceErrorKind.
//
// Parameters:
//   - err: the acquisition error, or nil
//
// Returns:
//   - SurfaceErrorKind: the failure class
func ClassifySurfaceError(err error) SurfaceErrorKind {
	switch {
	case err == nil:
		return SurfaceErrorNone
	case errors.Is(err, ErrSurfaceLost):
		return SurfaceErrorLost
	case errors.Is(err, ErrSurfaceOutOfMemory):
		return SurfaceErrorOutOfMemory
	default:
		return SurfaceErrorOther
	}
}

// markSurfaceError attaches the matching sentinel to a raw acquisition error
// from wgpu-native. Classification is by message text since the binding
// surfaces acquisition failures as plain errors. Outdated surfaces are folded
// into the lost class: both mean the swapchain no longer matches the window
// and the recovery path is identical.
func markSurfaceError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"), strings.Contains(msg, "outdated"):
		return errors.Mark(err, ErrSurfaceLost)
	case strings.Contains(msg, "out of memory"), strings.Contains(msg, "outofmemory"):
		return errors.Mark(err, ErrSurfaceOutOfMemory)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return errors.Mark(err, ErrSurfaceTimeout)
	default:
		return err
	}
}
