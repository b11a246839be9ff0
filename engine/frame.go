package engine

import (
	"github.com/lixenwraith/tuzbolin/actor"
	"github.com/lixenwraith/tuzbolin/device"
	"github.com/lixenwraith/tuzbolin/event"
	"github.com/lixenwraith/tuzbolin/status"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// Match state names, as declared in match.toml
const (
	StateWaiting = "Waiting"
	StatePlaying = "Playing"
	StateEnded   = "Ended"
)

// Presenter draws one frame
// The frame is only valid during the call
type Presenter interface {
	Present(f *Frame)
}

// SoundSink receives the events drained at the end of every tick
type SoundSink interface {
	Play(ev event.GameEvent)
}

// ActorView is what a presenter needs to draw one actor
type ActorView struct {
	Bounds vmath.Rect
	Visual actor.Visual
}

// Frame is a snapshot of the match for presentation, in display pixels
type Frame struct {
	State   string
	MatchID string
	Score   [2]int

	// Actors in draw order: balls, bars, then effects
	Actors []ActorView

	// Lines is the message overlay of the waiting and end screens
	Lines []string

	// ===== Debug only =====
	Debug    bool
	FPS      float64
	IRPoints [][]*device.Blob
	Metrics  []status.Metric
}

func (f *Frame) reset() {
	f.Actors = f.Actors[:0]
	f.Lines = f.Lines[:0]
	f.IRPoints = f.IRPoints[:0]
	f.Metrics = nil
}

func appendViews[T actor.Actor](dst []ActorView, items []T) []ActorView {
	for _, a := range items {
		if !a.Alive() {
			continue
		}
		dst = append(dst, ActorView{Bounds: a.Bounds(), Visual: a.Visual()})
	}
	return dst
}

type nopPresenter struct{}

func (nopPresenter) Present(*Frame) {}

type nopSink struct{}

func (nopSink) Play(event.GameEvent) {}
