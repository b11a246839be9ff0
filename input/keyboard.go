package input

import (
	"time"

	"github.com/lixenwraith/tuzbolin/parameter"
)

// Keyboard accumulates rotation and slide from held keys
// Rotation never re-centers by itself
type Keyboard struct {
	keys   *KeyState
	keymap KeyMap

	rot      float64
	slide    float64
	hardTurn float64
}

func NewKeyboard(keys *KeyState, keymap KeyMap) *Keyboard {
	return &Keyboard{keys: keys, keymap: keymap}
}

// Poll applies one step of the held keys
// Boost is only read when neither up nor down is held
func (k *Keyboard) Poll(now time.Time) {
	km := k.keymap
	held := func(c KeyCode) bool { return k.keys.Held(c, now) }

	k.hardTurn = 0
	if held(km.Left) {
		k.rot = min(k.rot+parameter.KeyRotateStep, 1)
	} else if held(km.Right) {
		k.rot = max(k.rot-parameter.KeyRotateStep, -1)
	}

	if held(km.Up) {
		k.slide = min(k.slide+parameter.KeySlideStep, 1)
	} else if held(km.Down) {
		k.slide = max(k.slide-parameter.KeySlideStep, -1)
	} else if held(km.Boost) {
		k.hardTurn = 1
	}
}

func (k *Keyboard) Control(bar Actuator) {
	if k.hardTurn != 0 {
		bar.HardTurn(k.hardTurn)
	}
	bar.Slide(k.slide)
	bar.Rotate(k.rot)
}

func (k *Keyboard) Rotation() float64 { return k.rot }
func (k *Keyboard) Slide() float64    { return k.slide }
func (k *Keyboard) HardTurn() float64 { return k.hardTurn }
