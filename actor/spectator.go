package actor

import (
	"time"

	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// Spectator is a looping crowd animation
// A loop plays the frame strip cycles times, then waits delay before the next loop.
type Spectator struct {
	stage  Stage
	x, y   float64
	frames int
	rate   int
	delay  time.Duration
	cycles int

	frame     int
	index     int
	waitFrame int
	cycleWait int
	loopWait  time.Time
}

// NewSpectator animates frames at (x, y), advancing one frame every rate+1 ticks
func NewSpectator(stage Stage, x, y float64, frames, rate int, delay time.Duration, cycles int) *Spectator {
	return &Spectator{
		stage:     stage,
		x:         x,
		y:         y,
		frames:    max(frames, 1),
		rate:      rate,
		delay:     delay,
		cycles:    cycles - 1,
		waitFrame: rate,
		cycleWait: cycles - 1,
	}
}

// NewCrowd is the spectator row above the field
func NewCrowd(stage Stage) *Spectator {
	return NewSpectator(stage, parameter.SpectatorX, parameter.SpectatorY, parameter.SpectatorFrames,
		parameter.SpectatorRate, parameter.SpectatorLoopDelay, parameter.SpectatorCyclesPerLoop)
}

func (s *Spectator) Update(time.Duration) {
	now := s.stage.Now()
	if !now.After(s.loopWait) {
		return
	}
	if s.waitFrame > 0 {
		s.waitFrame--
		return
	}

	s.frame = s.index
	s.index++
	if s.index >= s.frames {
		if s.cycleWait <= 0 {
			s.loopWait = now.Add(s.delay)
			s.cycleWait = s.cycles
		} else {
			s.cycleWait--
		}
		s.index = 0
	}
	s.waitFrame = s.rate
}

func (s *Spectator) Frame() int  { return s.frame }
func (s *Spectator) Alive() bool { return true }

func (s *Spectator) Bounds() vmath.Rect {
	return vmath.RectFromCenter(s.x, s.y, parameter.SpectatorSize, parameter.SpectatorSize)
}

func (s *Spectator) Visual() Visual {
	return Visual{Kind: VisualSpectator, Frame: s.frame, Scale: 1}
}
