package engine

import (
	_ "embed"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/tuzbolin/actor"
	"github.com/lixenwraith/tuzbolin/engine/fsm"
	"github.com/lixenwraith/tuzbolin/event"
	"github.com/lixenwraith/tuzbolin/input"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/physics"
	"github.com/lixenwraith/tuzbolin/status"
)

//go:embed match.toml
var matchGraph []byte

// Deps are the collaborators of a Game; nil members fall back to defaults
type Deps struct {
	Clock       Clock
	Controllers []input.Controller
	Presenter   Presenter
	Sound       SoundSink
	Registry    *status.Registry
}

// Game owns the match context and drives it through the match state machine
type Game struct {
	ctx     *MatchContext
	machine *fsm.Machine[*MatchContext]
	last    time.Time
}

// NewGame builds the field, the bars and the first ball, then enters Waiting
func NewGame(settings Settings, deps Deps) (*Game, error) {
	if err := settings.validate(len(deps.Controllers)); err != nil {
		return nil, err
	}
	if deps.Clock == nil {
		deps.Clock = NewTimeProvider()
	}
	if deps.Presenter == nil {
		deps.Presenter = nopPresenter{}
	}
	if deps.Sound == nil {
		deps.Sound = nopSink{}
	}
	if deps.Registry == nil {
		deps.Registry = status.NewRegistry()
	}

	seed := settings.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	world := physics.NewWorld()
	space := physics.NewSpace(parameter.HashCellSize)
	reg := deps.Registry
	c := &MatchContext{
		settings:    settings,
		clock:       deps.Clock,
		controllers: deps.Controllers,
		world:       world,
		space:       space,
		contacts:    physics.NewContactGroup(),
		field:       actor.NewField(space),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),

		bars:    actor.NewGroup[*actor.PenguinBar](),
		balls:   actor.NewGroup[*actor.Ball](),
		effects: actor.NewGroup[actor.Actor](),

		matchID:    uuid.New(),
		now:        deps.Clock.Now(),
		associated: make([]bool, len(deps.Controllers)),

		events:    event.NewEventQueue(),
		presenter: deps.Presenter,
		sound:     deps.Sound,
		targetFPS: settings.FPS,

		registry:     reg,
		statFPS:      reg.Floats.Get(status.KeyFPS),
		statTarget:   reg.Floats.Get(status.KeyTargetFPS),
		statTicks:    reg.Ints.Get(status.KeyTicks),
		statBalls:    reg.Ints.Get(status.KeyBalls),
		statContacts: reg.Ints.Get(status.KeyContacts),
		statIR:       reg.Ints.Get(status.KeyIRPoints),
		statLost:     reg.Ints.Get(status.KeyEventsLost),
		statState:    reg.Strings.Get(status.KeyState),
		statMatch:    reg.Strings.Get(status.KeyMatchID),
	}
	c.statTarget.Set(c.targetFPS)
	c.statMatch.Store(c.matchID.String())

	if err := c.populate(); err != nil {
		return nil, err
	}

	g := &Game{ctx: c}
	if err := g.initMachine(); err != nil {
		return nil, err
	}
	return g, nil
}

// populate creates the bars, the overlays and the first ball
func (c *MatchContext) populate() error {
	for slot := range parameter.NumBars {
		ctl := c.controllers[c.settings.ControllerOrder[slot]]
		bar, err := actor.NewPenguinBar(c, slot, c.settings.PenguinsPerBar[slot], ctl)
		if err != nil {
			return fmt.Errorf("bar %d: %w", slot, err)
		}
		c.bars.Add(bar)
	}

	c.effects.Add(actor.NewScoreBoard(c))
	if c.settings.MatchTime != 0 {
		c.effects.Add(actor.NewTimer(c))
	}
	c.effects.Add(actor.NewCrowd(c))

	if _, err := actor.SpawnExtraBall(c); err != nil {
		return fmt.Errorf("first ball: %w", err)
	}
	return nil
}

func (g *Game) initMachine() error {
	m := fsm.NewMachine[*MatchContext]()

	m.RegisterAction("AwaitPlayers", func(c *MatchContext, _ any) {
		c.pollControllers()
		c.present()
	})
	m.RegisterAction("StartMatch", func(c *MatchContext, _ any) { c.startMatch() })
	m.RegisterAction("Simulate", func(c *MatchContext, _ any) { c.simulate() })
	m.RegisterAction("ShowResult", func(c *MatchContext, _ any) {
		c.pollControllers()
		c.present()
	})
	m.RegisterAction("EmitEvent", func(c *MatchContext, args any) {
		if a, ok := args.(*fsm.EmitEventArgs); ok {
			c.Emit(a.Type, c.matchPayload())
		}
	})

	m.RegisterGuard("PlayersReady", func(c *MatchContext) bool { return c.playersReady() })
	m.RegisterGuard("ClockExpired", func(c *MatchContext) bool { return c.clockExpired() })
	m.RegisterGuard("GoalTargetReached", func(c *MatchContext) bool { return c.goalTargetReached() })
	m.RegisterGuard("WaitElapsed", func(c *MatchContext) bool {
		return m.TimeInState() >= c.settings.WaitTime
	})

	if err := m.LoadConfig(matchGraph); err != nil {
		return fmt.Errorf("match graph: %w", err)
	}

	c := g.ctx
	m.OnTransition = func(from, to string) {
		c.setState(to)
		log.Printf("match %s: %s -> %s", c.matchID, from, to)
	}
	c.machine = m
	g.machine = m

	if err := m.Init(c); err != nil {
		return err
	}
	c.setState(m.State())
	return nil
}

// Tick runs one frame: the active state's update and tick transitions,
// then the event drain, which also feeds event transitions such as the goal target
func (g *Game) Tick() {
	c := g.ctx
	now := c.clock.Now()
	c.delta = 0
	if !g.last.IsZero() {
		c.delta = now.Sub(g.last)
	}
	g.last = now
	c.now = now
	c.rate.Tick(now)
	c.statTicks.Add(1)

	g.machine.Update(c, c.delta)
	c.drainEvents()
}

// HandleIntent applies a system intent; it returns false when the game should quit
func (g *Game) HandleIntent(intent input.SystemIntent) bool {
	c := g.ctx
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentKickoff:
		c.kickoffAll()
	case input.IntentExtraBall:
		if _, err := actor.SpawnExtraBall(c); err != nil {
			log.Printf("extra ball: %v", err)
		}
	case input.IntentFPSUp:
		c.adjustFPS(1)
	case input.IntentFPSDown:
		c.adjustFPS(-1)
	}
	return true
}

func (g *Game) Context() *MatchContext { return g.ctx }
func (g *Game) State() string          { return g.ctx.state }
func (g *Game) TargetFPS() float64     { return g.ctx.targetFPS }

// FrameInterval is the tick period at the current target rate
func (g *Game) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / g.ctx.targetFPS)
}
