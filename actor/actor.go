// Package actor bridges the rigid-body world and the screen: every actor owns
// zero or more bodies and a pixel-space representation updated once per tick.
package actor

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/tuzbolin/event"
	"github.com/lixenwraith/tuzbolin/physics"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// Actor is anything with a representation on the screen
type Actor interface {
	// Update advances the actor by one frame
	Update(delta time.Duration)
	// Bounds is the screen rectangle in display pixels
	Bounds() vmath.Rect
	Visual() Visual
	// Alive is false once the actor must be pruned from its group
	Alive() bool
}

// Stage is the match environment actors read and mutate during Update
type Stage interface {
	World() *physics.World
	Space() *physics.Space
	Field() *Field
	Now() time.Time
	Rand() *rand.Rand
	Emit(t event.EventType, payload any)

	// Score returns the current score, indexed by team
	Score() [2]int
	// AddScore credits team with one goal and returns the new score
	AddScore(team int) [2]int
	// Deadline is the match end time, zero until the match clock starts
	Deadline() time.Time
	// MatchTime is the configured match length, zero for no limit
	MatchTime() time.Duration

	AddBall(b *Ball)
	AddEffect(a Actor)
}

// VisualKind selects how a renderer draws an actor
type VisualKind uint8

const (
	VisualBall VisualKind = iota
	VisualBar
	VisualText
	VisualBanner
	VisualSpectator
)

// Visual is the render-facing snapshot of an actor
type Visual struct {
	Kind   VisualKind
	Team   int
	Keeper bool
	Hidden bool

	// Angle is the bar rotation seen from above, radians
	Angle float64
	// Points are penguin centers in display pixels
	Points [][2]float64

	Text  string
	Scale float64
	Frame int
}
