package orion

import (
	"log/slog"
	"time"

	"github.com/oliverbestmann/cubes/lifecycle"
)

type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous frame
	Delta time.Duration

	lastTime time.Time

	// defaults to time.Now
	now func() time.Time
}

func (t *FrameTimes) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records a presented frame. Returns true every 60 frames.
func (t *FrameTimes) Tick() bool {
	now := time.Now()
	if t.now != nil {
		now = t.now()
	}

	if t.FrameCount > 0 {
		t.update(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount += 1

	return t.FrameCount%60 == 0
}

// frameReporter observes redraw results and logs frame statistics
// periodically.
type frameReporter struct {
	times    FrameTimes
	outdated uint64
	failed   uint64
}

func (r *frameReporter) observe(result lifecycle.FrameResult) {
	switch result {
	case lifecycle.FramePresented:
		if r.times.Tick() {
			slog.Debug(
				"Frame stats",
				slog.Uint64("frames", r.times.FrameCount),
				slog.Float64("fps", r.times.FPS()),
				slog.Duration("max", r.times.MaxDuration),
				slog.Uint64("outdated", r.outdated),
				slog.Uint64("failed", r.failed),
			)

			r.times.MaxDuration = 0
		}

	case lifecycle.FrameOutdated:
		r.outdated++

	case lifecycle.FrameFailed:
		r.failed++
	}
}
