package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// KeyState emulates held keys on a terminal, which only reports presses and repeats
// A key counts as held while its last press is younger than the hold window
type KeyState struct {
	hold  time.Duration
	last  map[KeyCode]time.Time
	count uint64
}

func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{hold: hold, last: make(map[KeyCode]time.Time)}
}

// HandleEvent records a key event using its own timestamp
func (s *KeyState) HandleEvent(ev *tcell.EventKey) {
	s.Press(KeyCodeFromEvent(ev), ev.When())
}

func (s *KeyState) Press(k KeyCode, at time.Time) {
	s.last[k] = at
	s.count++
}

// Release forgets a key immediately
func (s *KeyState) Release(k KeyCode) {
	delete(s.last, k)
}

func (s *KeyState) Held(k KeyCode, now time.Time) bool {
	at, ok := s.last[k]
	if !ok {
		return false
	}
	return now.Sub(at) < s.hold
}

// Presses is the number of key events seen
func (s *KeyState) Presses() uint64 { return s.count }
