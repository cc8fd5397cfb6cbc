package capture

import "time"

// DefaultInterval is the number of frames averaged per report.
const DefaultInterval = 100

// Report is the average frame time over one window of frames.
type Report struct {
	Average time.Duration
	Window  int
	Total   uint64
	At      time.Time
}

// AverageMillis returns the average frame time in milliseconds.
func (r Report) AverageMillis() float64 {
	return float64(r.Average) / float64(time.Millisecond)
}

// FPS returns the frame rate implied by the average frame time.
func (r Report) FPS() float64 {
	if r.Average <= 0 {
		return 0
	}
	return float64(time.Second) / float64(r.Average)
}

// FrameTimer keeps a fixed window moving average of the frame interval. The
// window is aligned on frame counts, so a stalled source delays the report
// instead of producing an empty one.
type FrameTimer struct {
	interval int
	frames   int
	total    uint64
	start    time.Time
}

func NewFrameTimer(interval int, start time.Time) *FrameTimer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &FrameTimer{interval: interval, start: start}
}

// Tick records a frame seen at now and returns a report when the window is
// complete.
func (t *FrameTimer) Tick(now time.Time) (Report, bool) {
	t.frames++
	t.total++
	if t.frames%t.interval != 0 {
		return Report{}, false
	}

	rep := Report{
		Average: now.Sub(t.start) / time.Duration(t.frames),
		Window:  t.frames,
		Total:   t.total,
		At:      now,
	}
	t.start = now
	t.frames = 0
	return rep, true
}

// Total returns the number of frames seen so far.
func (t *FrameTimer) Total() uint64 {
	return t.total
}
