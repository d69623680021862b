package profiler

import (
	"runtime"
	"time"

	"github.com/loov/hrtime"
	"go.uber.org/zap"
)

// Profiler tracks frame rate, frame-time spread, and memory statistics.
// Stats are reported through the structured logger at a fixed interval.
// Frame times use hrtime's monotonic high-resolution clock, which has far
// better granularity than time.Now on Windows.
type Profiler struct {
	log *zap.Logger

	frameCount     int
	lastReport     time.Duration
	lastFrame      time.Duration
	worstFrame     time.Duration
	updateInterval time.Duration

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler reporting through the given logger.
// The report interval defaults to 1 second.
//
// Parameters:
//   - log: the logger stats are reported through
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(log *zap.Logger) *Profiler {
	if log == nil {
		log = zap.NewNop()
	}
	now := hrtime.Now()
	return &Profiler{
		log:            log,
		lastReport:     now,
		lastFrame:      now,
		updateInterval: time.Second,
	}
}

// Tick should be called once per frame. It accumulates frame timing and logs
// performance statistics when the report interval has elapsed: FPS, worst
// frame time, heap usage, allocation rate, and GC pause times.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := hrtime.Now()
	frameDur := now - p.lastFrame
	p.lastFrame = now
	p.frameCount++
	if frameDur > p.worstFrame {
		p.worstFrame = frameDur
	}

	elapsed := now - p.lastReport
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var maxPause time.Duration
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := time.Duration(p.memStats.PauseNs[i%256])
			if pause > maxPause {
				maxPause = pause
			}
		}
	}

	p.log.Info("frame stats",
		zap.Float64("fps", fps),
		zap.Duration("worst_frame", p.worstFrame),
		zap.Float64("heap_mb", allocMB),
		zap.Float64("alloc_rate_mb_s", allocRateMB),
		zap.Uint32("gc_count", gcCount),
		zap.Duration("gc_max_pause", maxPause),
		zap.Float64("sys_mb", sysMB),
	)

	p.frameCount = 0
	p.worstFrame = 0
	p.lastReport = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
