package status

import (
	"strconv"
	"sync/atomic"
)

// Metric keys written by the game loop and controllers
const (
	KeyFPS           = "engine.fps"
	KeyTargetFPS     = "engine.fps_target"
	KeyTicks         = "engine.ticks"
	KeyState         = "match.state"
	KeyMatchID       = "match.id"
	KeyBalls         = "match.balls"
	KeyContacts      = "physics.contacts"
	KeyDeviceDropped = "device.dropped"
	KeyEventsLost    = "event.lost"
	KeyIRPoints      = "input.ir_points"
	KeyAudio         = "audio.enabled"
)

// Registry is the central metrics facade
// Components cache pointers during setup; the tick writes directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[Gauge]
	Strings *MetricMap[Label]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[Gauge](),
		Strings: NewMetricMap[Label](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Metric is a formatted key/value pair for display
type Metric struct {
	Key   string
	Value string
}

// Snapshot formats every metric, grouped by type and sorted by key within a group
func (r *Registry) Snapshot() []Metric {
	out := make([]Metric, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, Metric{k, strconv.FormatBool(v.Load())})
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Metric{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *Gauge) {
		out = append(out, Metric{k, strconv.FormatFloat(v.Load(), 'f', 1, 64)})
	})
	r.Strings.Range(func(k string, v *Label) {
		out = append(out, Metric{k, v.Load()})
	})
	return out
}
