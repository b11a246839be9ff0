package engine

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/tuzbolin/actor"
	"github.com/lixenwraith/tuzbolin/event"
	"github.com/lixenwraith/tuzbolin/input"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/physics"
	"github.com/lixenwraith/tuzbolin/status"
)

var ErrInvalidSettings = errors.New("invalid match settings")

// Settings are the match rules and line-up, fixed for the life of a Game
type Settings struct {
	FPS        float64
	GoalTarget int
	// MatchTime is the match length, zero for no limit
	MatchTime time.Duration
	// WaitTime is the pause on the end screen before a rematch
	WaitTime time.Duration

	// PenguinsPerBar and ControllerOrder are indexed by bar slot, left to right
	PenguinsPerBar  []int
	ControllerOrder []int

	Debug bool
	// Seed drives kickoff forces; zero picks a random seed
	Seed uint64
}

func DefaultSettings() Settings {
	return Settings{
		FPS:             parameter.DefaultFPS,
		GoalTarget:      parameter.DefaultGoalTarget,
		MatchTime:       parameter.DefaultMatchTime,
		WaitTime:        parameter.DefaultWaitTime,
		PenguinsPerBar:  append([]int(nil), parameter.DefaultPenguinsPerBar...),
		ControllerOrder: []int{0, 0, 1, 0, 1, 0, 1, 1},
	}
}

func (s Settings) validate(numControllers int) error {
	switch {
	case s.FPS <= 0:
		return fmt.Errorf("%w: fps %v", ErrInvalidSettings, s.FPS)
	case s.GoalTarget <= 0:
		return fmt.Errorf("%w: goal target %d", ErrInvalidSettings, s.GoalTarget)
	case s.MatchTime < 0 || s.WaitTime < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidSettings)
	case len(s.PenguinsPerBar) != parameter.NumBars:
		return fmt.Errorf("%w: %d penguin counts for %d bars", ErrInvalidSettings, len(s.PenguinsPerBar), parameter.NumBars)
	case len(s.ControllerOrder) != parameter.NumBars:
		return fmt.Errorf("%w: %d controller slots for %d bars", ErrInvalidSettings, len(s.ControllerOrder), parameter.NumBars)
	}
	for slot, idx := range s.ControllerOrder {
		if idx < 0 || idx >= numControllers {
			return fmt.Errorf("%w: bar %d uses controller %d of %d", ErrInvalidSettings, slot, idx, numControllers)
		}
	}
	return nil
}

// MatchContext holds the match state shared by the state machine actions and the actors
type MatchContext struct {
	// ===== Immutable After Init =====

	settings    Settings
	clock       Clock
	controllers []input.Controller
	world       *physics.World
	space       *physics.Space
	contacts    *physics.ContactGroup
	field       *actor.Field
	rng         *rand.Rand

	// ===== Actors =====

	bars    *actor.Group[*actor.PenguinBar]
	balls   *actor.Group[*actor.Ball]
	effects *actor.Group[actor.Actor]

	// ===== Match State =====

	matchID  uuid.UUID
	score    [2]int
	deadline time.Time
	now      time.Time
	delta    time.Duration
	state    string
	machine  matchMachine
	// associated mirrors controller association to report changes
	associated []bool

	// ===== Output =====

	events    *event.EventQueue
	drained   []event.GameEvent
	presenter Presenter
	sound     SoundSink
	frame     Frame
	rate      FrameRate
	targetFPS float64

	// Cached metric pointers
	registry     *status.Registry
	statFPS      *status.Gauge
	statTarget   *status.Gauge
	statTicks    *atomic.Int64
	statBalls    *atomic.Int64
	statContacts *atomic.Int64
	statIR       *atomic.Int64
	statLost     *atomic.Int64
	statState    *status.Label
	statMatch    *status.Label
}

// matchMachine is the part of the state machine the context drives
type matchMachine interface {
	TimeInState() time.Duration
	HandleEvent(c *MatchContext, t event.EventType) bool
}

// ===== actor.Stage =====

func (c *MatchContext) World() *physics.World    { return c.world }
func (c *MatchContext) Space() *physics.Space    { return c.space }
func (c *MatchContext) Field() *actor.Field      { return c.field }
func (c *MatchContext) Now() time.Time           { return c.now }
func (c *MatchContext) Rand() *rand.Rand         { return c.rng }
func (c *MatchContext) Score() [2]int            { return c.score }
func (c *MatchContext) Deadline() time.Time      { return c.deadline }
func (c *MatchContext) MatchTime() time.Duration { return c.settings.MatchTime }
func (c *MatchContext) AddBall(b *actor.Ball)    { c.balls.Add(b) }
func (c *MatchContext) AddEffect(a actor.Actor)  { c.effects.Add(a) }

func (c *MatchContext) Emit(t event.EventType, payload any) {
	c.events.Emit(t, payload)
}

func (c *MatchContext) AddScore(team int) [2]int {
	c.score[team]++
	return c.score
}

// ===== Accessors =====

func (c *MatchContext) MatchID() uuid.UUID              { return c.matchID }
func (c *MatchContext) State() string                   { return c.state }
func (c *MatchContext) Bars() []*actor.PenguinBar       { return c.bars.Items() }
func (c *MatchContext) Balls() []*actor.Ball            { return c.balls.Items() }
func (c *MatchContext) Effects() []actor.Actor          { return c.effects.Items() }
func (c *MatchContext) Contacts() *physics.ContactGroup { return c.contacts }
func (c *MatchContext) Controllers() []input.Controller { return c.controllers }
func (c *MatchContext) Settings() Settings              { return c.settings }
func (c *MatchContext) ObservedFPS() float64            { return c.rate.FPS() }
func (c *MatchContext) TargetFPS() float64              { return c.targetFPS }

// LastFrame is the frame most recently handed to the presenter
func (c *MatchContext) LastFrame() *Frame { return &c.frame }

func (c *MatchContext) setState(name string) {
	c.state = name
	c.statState.Store(name)
}

// stepSeconds is the physics step: one frame at the observed rate
func (c *MatchContext) stepSeconds() float64 {
	return 1 / c.effectiveFPS()
}

func (c *MatchContext) effectiveFPS() float64 {
	if fps := c.rate.FPS(); fps > 0 {
		return fps
	}
	return c.targetFPS
}

func winner(score [2]int) int {
	switch {
	case score[0] > score[1]:
		return 0
	case score[1] > score[0]:
		return 1
	}
	return -1
}

func (c *MatchContext) matchPayload() *event.MatchPayload {
	return &event.MatchPayload{MatchID: c.matchID.String(), Score: c.score, Winner: winner(c.score)}
}

// ===== Tick steps =====

// pollControllers polls every controller once and reports association changes
func (c *MatchContext) pollControllers() {
	for i, ctl := range c.controllers {
		ctl.Poll(c.now)

		a, ok := ctl.(input.Associable)
		if !ok {
			continue
		}
		if now := a.Associated(); now != c.associated[i] {
			c.associated[i] = now
			payload := &event.ControllerPayload{Index: i}
			if now {
				c.Emit(event.EventControllerAssociated, payload)
			} else {
				c.Emit(event.EventControllerLost, payload)
			}
		}
	}
}

// simulate runs one playing tick up to the frame presentation
func (c *MatchContext) simulate() {
	c.pollControllers()

	c.bars.Update(c.delta)
	c.balls.Update(c.delta)
	c.effects.Update(c.delta)

	c.contacts.Clear()
	c.space.Collide(actor.BounceCallback(c, c.world.ContactResponse(c.contacts)))
	c.world.Step(c.stepSeconds())

	c.balls.Prune()
	c.effects.Prune()

	c.present()
}

// playersReady reports whether every device controller is associated and
// every associated point tracker sees at least two points
func (c *MatchContext) playersReady() bool {
	for _, ctl := range c.controllers {
		if a, ok := ctl.(input.Associable); ok && !a.Associated() {
			return false
		}
		if p, ok := ctl.(input.PointTelemetryProvider); ok && p.TrackedPoints() < 2 {
			return false
		}
	}
	return true
}

// clockExpired is the per-tick end check; the match clock starts on its first evaluation
func (c *MatchContext) clockExpired() bool {
	if c.settings.MatchTime <= 0 {
		return false
	}
	if c.deadline.IsZero() {
		c.deadline = c.now.Add(c.settings.MatchTime)
		return false
	}
	return c.now.After(c.deadline)
}

// goalTargetReached is checked on every goal
func (c *MatchContext) goalTargetReached() bool {
	return max(c.score[0], c.score[1]) >= c.settings.GoalTarget
}

// startMatch resets the score and the match clock under a new match id
func (c *MatchContext) startMatch() {
	c.matchID = uuid.New()
	c.score = [2]int{}
	c.deadline = time.Time{}
	c.statMatch.Store(c.matchID.String())
}

func (c *MatchContext) waitRemaining() time.Duration {
	if c.machine == nil {
		return c.settings.WaitTime
	}
	return max(c.settings.WaitTime-c.machine.TimeInState(), 0)
}

// ===== Intents =====

func (c *MatchContext) kickoffAll() {
	for _, b := range c.balls.Items() {
		if b.Alive() {
			b.Kickoff()
		}
	}
}

func (c *MatchContext) adjustFPS(step float64) {
	c.targetFPS = max(c.targetFPS+step, 1)
	c.statTarget.Set(c.targetFPS)
}

// ===== Output =====

// drainEvents hands the events of this tick to the sound sink and the state machine
// A transition taken here may emit further events, drained in the same call
func (c *MatchContext) drainEvents() {
	for {
		c.drained = c.events.Drain(c.drained[:0])
		if len(c.drained) == 0 {
			break
		}
		for _, ev := range c.drained {
			switch p := ev.Payload.(type) {
			case *event.GoalPayload:
				log.Printf("match %s: goal for team %d, score %d-%d", c.matchID, p.Team, p.Score[0], p.Score[1])
			case *event.MatchPayload:
				log.Printf("match %s: %s, score %d-%d", p.MatchID, ev.Type, p.Score[0], p.Score[1])
			}
			c.sound.Play(ev)
			if c.machine != nil {
				c.machine.HandleEvent(c, ev.Type)
			}
		}
	}
	clear(c.drained)
}

func (c *MatchContext) writeMetrics() {
	c.statFPS.Set(c.rate.FPS())
	c.statBalls.Store(int64(c.balls.Len()))
	c.statContacts.Store(int64(c.contacts.Len()))

	points := 0
	for _, ctl := range c.controllers {
		if p, ok := ctl.(input.PointTelemetryProvider); ok {
			points += p.TrackedPoints()
		}
	}
	c.statIR.Store(int64(points))
	c.statLost.Store(int64(c.events.Lost()))
}

// present builds the frame of the current state and hands it to the presenter
func (c *MatchContext) present() {
	c.writeMetrics()

	f := &c.frame
	f.reset()
	f.State = c.state
	f.MatchID = c.matchID.String()
	f.Score = c.score
	f.Debug = c.settings.Debug
	f.FPS = c.rate.FPS()

	f.Actors = appendViews(f.Actors, c.balls.Items())
	f.Actors = appendViews(f.Actors, c.bars.Items())
	f.Actors = appendViews(f.Actors, c.effects.Items())

	switch c.state {
	case StateWaiting:
		f.Lines = c.waitingLines(f.Lines)
	case StateEnded:
		f.Lines = c.resultLines(f.Lines)
	}

	if f.Debug {
		for _, ctl := range c.controllers {
			if v, ok := ctl.(input.PointViewer); ok {
				f.IRPoints = append(f.IRPoints, v.LastPoints())
			}
		}
		f.Metrics = c.registry.Snapshot()
	}

	c.presenter.Present(f)
}

func (c *MatchContext) waitingLines(lines []string) []string {
	lines = append(lines, "Waiting for players", "Press 1 and 2 on every controller")
	for i, ctl := range c.controllers {
		a, ok := ctl.(input.Associable)
		if !ok {
			continue
		}
		line := fmt.Sprintf("Controller %d: searching", i+1)
		if a.Associated() {
			line = fmt.Sprintf("Controller %d: connected", i+1)
			if p, ok := ctl.(input.PointTelemetryProvider); ok {
				line = fmt.Sprintf("Controller %d: %d points", i+1, p.TrackedPoints())
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (c *MatchContext) resultLines(lines []string) []string {
	switch w := winner(c.score); w {
	case -1:
		lines = append(lines, "It's a draw!")
	default:
		lines = append(lines, fmt.Sprintf("%s team wins!", parameter.TeamNames[w]))
	}
	secs := int(math.Ceil(c.waitRemaining().Seconds()))
	return append(lines, fmt.Sprintf("Next match in %d", secs))
}
