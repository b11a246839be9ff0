package engine

import (
	"time"

	"github.com/lixenwraith/tuzbolin/parameter"
)

// FrameRate measures the observed tick rate over a sliding window of frame times
type FrameRate struct {
	times [parameter.FrameRateWindow]time.Time
	head  int
	count int
}

// Tick records a frame at now
func (f *FrameRate) Tick(now time.Time) {
	f.times[f.head] = now
	f.head = (f.head + 1) % len(f.times)
	if f.count < len(f.times) {
		f.count++
	}
}

// FPS returns the average rate over the window, 0 until two frames were seen
func (f *FrameRate) FPS() float64 {
	if f.count < 2 {
		return 0
	}
	newest := f.times[(f.head-1+len(f.times))%len(f.times)]
	oldest := f.times[(f.head-f.count+len(f.times))%len(f.times)]
	span := newest.Sub(oldest)
	if span <= 0 {
		return 0
	}
	return float64(f.count-1) / span.Seconds()
}

func (f *FrameRate) Reset() {
	f.head, f.count = 0, 0
}
