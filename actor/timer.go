package actor

import (
	"fmt"
	"time"

	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// Timer shows the remaining match time during the last minute and
// for a few seconds at the top of every minute
type Timer struct {
	stage  Stage
	text   string
	hidden bool
	bounds vmath.Rect
}

func NewTimer(stage Stage) *Timer {
	t := &Timer{stage: stage}
	t.Update(0)
	return t
}

// Remaining is the time left on the match clock
// Before the clock starts it is the full match time
func (t *Timer) Remaining() time.Duration {
	deadline := t.stage.Deadline()
	if deadline.IsZero() {
		return t.stage.MatchTime()
	}
	return max(deadline.Sub(t.stage.Now()), 0)
}

func (t *Timer) Update(time.Duration) {
	remains := t.Remaining()
	t.hidden = !TimerVisible(remains)
	if t.hidden {
		return
	}
	t.text = FormatClock(remains)
	t.bounds = vmath.Rect{
		X: parameter.TimerX,
		Y: parameter.TimerY,
		W: float64(len(t.text)) * parameter.CharWidth,
		H: parameter.LineHeight,
	}
}

// TimerVisible reports whether the clock shows for a remaining time
func TimerVisible(remains time.Duration) bool {
	return remains < parameter.TimerLastMinute ||
		remains%time.Minute > time.Minute-parameter.TimerMinuteFlash
}

// FormatClock renders a duration as MM:SS:T with T in tenths of a second
func FormatClock(d time.Duration) string {
	d = max(d, 0)
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%d", ms/60000, ms/1000%60, ms%1000/100)
}

func (t *Timer) Text() string       { return t.text }
func (t *Timer) Hidden() bool       { return t.hidden }
func (t *Timer) Alive() bool        { return true }
func (t *Timer) Bounds() vmath.Rect { return t.bounds }

func (t *Timer) Visual() Visual {
	return Visual{Kind: VisualText, Text: t.text, Hidden: t.hidden, Scale: 1}
}
