package actor

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/event"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/physics"
	"github.com/lixenwraith/tuzbolin/vmath"
)

type testStage struct {
	world     *physics.World
	space     *physics.Space
	field     *Field
	now       time.Time
	rng       *rand.Rand
	events    []event.GameEvent
	score     [2]int
	deadline  time.Time
	matchTime time.Duration
	balls     []*Ball
	effects   []Actor
}

func newTestStage() *testStage {
	s := &testStage{
		world:     physics.NewWorld(),
		space:     physics.NewSpace(parameter.HashCellSize),
		now:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		rng:       rand.New(rand.NewPCG(1, 2)),
		matchTime: 3 * time.Minute,
	}
	s.field = NewField(s.space)
	return s
}

func (s *testStage) World() *physics.World    { return s.world }
func (s *testStage) Space() *physics.Space    { return s.space }
func (s *testStage) Field() *Field            { return s.field }
func (s *testStage) Now() time.Time           { return s.now }
func (s *testStage) Rand() *rand.Rand         { return s.rng }
func (s *testStage) Score() [2]int            { return s.score }
func (s *testStage) Deadline() time.Time      { return s.deadline }
func (s *testStage) MatchTime() time.Duration { return s.matchTime }
func (s *testStage) AddBall(b *Ball)          { s.balls = append(s.balls, b) }
func (s *testStage) AddEffect(a Actor)        { s.effects = append(s.effects, a) }

func (s *testStage) Emit(t event.EventType, payload any) {
	s.events = append(s.events, event.GameEvent{Type: t, Payload: payload})
}

func (s *testStage) AddScore(team int) [2]int {
	s.score[team]++
	return s.score
}

func (s *testStage) count(t event.EventType) int {
	n := 0
	for _, ev := range s.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func mustBar(t *testing.T, s *testStage, slot, penguins int) *PenguinBar {
	t.Helper()
	bar, err := NewPenguinBar(s, slot, penguins, nil)
	if err != nil {
		t.Fatalf("NewPenguinBar failed: %v", err)
	}
	return bar
}

func mustBall(t *testing.T, s *testStage) *Ball {
	t.Helper()
	b, err := NewBall(s, parameter.BallRadius)
	if err != nil {
		t.Fatalf("NewBall failed: %v", err)
	}
	return b
}

func TestRotateTeamSymmetry(t *testing.T) {
	s := newTestStage()
	home := mustBar(t, s, 0, 1)
	away := mustBar(t, s, 2, 3)
	if home.Team() != 0 || away.Team() != 1 {
		t.Fatalf("Expected teams 0 and 1, got %d and %d", home.Team(), away.Team())
	}

	for _, p := range []float64{-1, -0.5, 0, 0.3, 1} {
		home.Rotate(p)
		away.Rotate(p)
		h, a := home.Hinge().Params(), away.Hinge().Params()
		if h.LoStop != -a.LoStop || h.HiStop != -a.HiStop {
			t.Errorf("p=%.1f: expected mirrored stops, got [%f,%f] and [%f,%f]", p, h.LoStop, h.HiStop, a.LoStop, a.HiStop)
		}
		if math.Abs(h.LoStop-math.Pi*p/2) > 1e-12 || h.LoStop != h.HiStop {
			t.Errorf("p=%.1f: expected pinned angle %f, got [%f,%f]", p, math.Pi*p/2, h.LoStop, h.HiStop)
		}
	}
}

func TestActuationIdempotent(t *testing.T) {
	s := newTestStage()
	bar := mustBar(t, s, 3, 5)

	bar.Rotate(0.4)
	bar.Slide(-0.7)
	hinge, slider := bar.Hinge().Params(), bar.Slider().Params()

	bar.Rotate(0.4)
	bar.Slide(-0.7)
	if bar.Hinge().Params() != hinge {
		t.Errorf("Expected repeated rotate to keep %+v, got %+v", hinge, bar.Hinge().Params())
	}
	if bar.Slider().Params() != slider {
		t.Errorf("Expected repeated slide to keep %+v, got %+v", slider, bar.Slider().Params())
	}
}

func TestSlideWithinExtent(t *testing.T) {
	s := newTestStage()
	keeper := mustBar(t, s, 0, 1)
	mid := mustBar(t, s, 3, 5)

	wantKeeper := vmath.PixelDistToWorld(parameter.GoalHeight * 1.5)
	if math.Abs(keeper.MaxSlideExtent()-wantKeeper) > 1e-12 {
		t.Errorf("Expected keeper extent %f, got %f", wantKeeper, keeper.MaxSlideExtent())
	}
	wantMid := vmath.PixelDistToWorld(parameter.FieldHeight) / 5 / 2
	if math.Abs(mid.MaxSlideExtent()-wantMid) > 1e-12 {
		t.Errorf("Expected 5-penguin extent %f, got %f", wantMid, mid.MaxSlideExtent())
	}

	for _, a := range []float64{1, 3, -1, -3} {
		for _, bar := range []*PenguinBar{keeper, mid} {
			bar.Slide(a)
		}
		for range 200 {
			s.world.Step(1.0 / parameter.DefaultFPS)
			for _, bar := range []*PenguinBar{keeper, mid} {
				if p := math.Abs(bar.Slider().Position()); p > bar.MaxSlideExtent()+1e-9 {
					t.Fatalf("a=%.0f slot %d: slide %f exceeds extent %f", a, bar.Slot(), p, bar.MaxSlideExtent())
				}
			}
		}
	}
}

func TestHardTurnCountdown(t *testing.T) {
	s := newTestStage()
	bar := mustBar(t, s, 1, 2)
	bar.Rotate(0.5)

	bar.HardTurn(-0.3)
	p := bar.Hinge().Params()
	if !math.IsInf(p.LoStop, -1) || !math.IsInf(p.HiStop, 1) {
		t.Errorf("Expected stops released, got [%f,%f]", p.LoStop, p.HiStop)
	}
	if p.Vel != -parameter.HardTurnVelocity || p.FMax != 50 {
		t.Errorf("Expected motor (-%f, 50), got (%f, %f)", parameter.HardTurnVelocity, p.Vel, p.FMax)
	}

	bar.Rotate(1)
	if !math.IsInf(bar.Hinge().Params().LoStop, -1) {
		t.Error("Expected rotate to be ignored during a hard turn")
	}

	for range parameter.HardTurnSteps {
		bar.Update(0)
	}
	if bar.HardTurnRemaining() != 0 || bar.Hinge().Params().FMax != 0 {
		t.Errorf("Expected motor released after countdown, remaining %d fmax %f", bar.HardTurnRemaining(), bar.Hinge().Params().FMax)
	}
	bar.Rotate(1)
	if bar.Hinge().Params().LoStop != math.Pi/2 {
		t.Errorf("Expected rotate to re-pin after the hard turn, got %f", bar.Hinge().Params().LoStop)
	}
}

func TestBarBuild(t *testing.T) {
	s := newTestStage()
	walls := s.space.Len()
	bar := mustBar(t, s, 4, 5)
	if s.space.Len() != walls+5 {
		t.Errorf("Expected 5 penguin geoms, got %d", s.space.Len()-walls)
	}

	// Pinned rotation keeps penguins on the field plane under the bar
	for range 50 {
		s.world.Step(1.0 / parameter.DefaultFPS)
	}
	for i, p := range bar.Penguins() {
		x, _ := vmath.WorldToPixel(p.Position())
		if math.Abs(x-bar.Column()) > 1e-6 || math.Abs(p.Position().Z()) > 1e-6 {
			t.Errorf("Penguin %d: expected at column %f z 0, got x %f z %f", i, bar.Column(), x, p.Position().Z())
		}
	}

	bar.Update(0)
	if b := bar.Bounds(); b.W != parameter.BarSpriteWidth || b.Y < parameter.FieldTop || b.H <= 0 {
		t.Errorf("Expected bounds inside the field column, got %+v", b)
	}
	if v := bar.Visual(); len(v.Points) != 5 || v.Keeper || v.Team != 1 {
		t.Errorf("Unexpected visual %+v", v)
	}
}

func TestBarColumnsSymmetric(t *testing.T) {
	for i := range parameter.NumBars {
		left := BarColumn(i) - parameter.FieldLeft
		right := parameter.FieldLeft + parameter.FieldWidth - BarColumn(parameter.NumBars-1-i)
		if math.Abs(left-right) > 1e-9 {
			t.Errorf("Slot %d: expected mirrored columns, got %f and %f", i, left, right)
		}
	}
}

func TestGoalScoresOwningTeam(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		team int
	}{
		{"left goal", parameter.FieldLeft + 5, 0},
		{"right goal", parameter.FieldLeft + parameter.FieldWidth - 5, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStage()
			ball := mustBall(t, s)
			geoms := s.space.Len()
			ball.Body().SetPosition(vmath.PixelToWorld(tc.x, parameter.FieldTop+parameter.FieldHeight/2))

			ball.Update(0)
			want := [2]int{}
			want[tc.team] = 1
			if s.score != want {
				t.Errorf("Expected score %v, got %v", want, s.score)
			}
			if ball.Alive() || !ball.Body().Removed() {
				t.Error("Expected ball removed in the scoring tick")
			}
			if s.space.Len() != geoms-1 {
				t.Errorf("Expected ball geom removed, space has %d of %d", s.space.Len(), geoms)
			}
			if s.count(event.EventGoalScored) != 1 || len(s.effects) != 1 {
				t.Errorf("Expected one goal event and animation, got %d events %d effects", s.count(event.EventGoalScored), len(s.effects))
			}

			ball.Update(0)
			if s.score != want {
				t.Errorf("Expected dead ball to never score again, got %v", s.score)
			}
		})
	}
}

func TestBallOutsideGoalMouth(t *testing.T) {
	s := newTestStage()
	ball := mustBall(t, s)
	ball.Body().SetPosition(vmath.PixelToWorld(parameter.FieldLeft+15, parameter.FieldTop+20))
	ball.Update(0)
	if !ball.Alive() || s.score != [2]int{} {
		t.Error("Expected no goal away from the goal mouth")
	}
	if ball.Body().Force().X() <= 0 {
		t.Errorf("Expected concave force toward center, got %v", ball.Body().Force())
	}
}

func TestKickoffBoundary(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		vel     float64
		kickoff bool
	}{
		{"still centered", 0.04, 0, true},
		{"still off center", 0.06, 0, false},
		{"slow centered", 0, 0.049, true},
		{"at speed threshold", 0, 0.05, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStage()
			ball := mustBall(t, s)
			ball.Body().SetPosition(mgl64.Vec3{tc.x, 0.1, 0.02})
			ball.Body().SetLinearVel(mgl64.Vec3{tc.vel, 0, 0})

			ball.Update(0)
			got := s.count(event.EventKickoff) == 1
			if got != tc.kickoff {
				t.Fatalf("Expected kickoff=%v, got %v", tc.kickoff, got)
			}
			pos := ball.Body().Position()
			if tc.kickoff && pos != (mgl64.Vec3{}) {
				t.Errorf("Expected ball reset to center, got %v", pos)
			}
			if !tc.kickoff && pos.Z() != 0 {
				t.Errorf("Expected z re-pinned to 0, got %f", pos.Z())
			}
		})
	}
}

func TestBounceCooldown(t *testing.T) {
	s := newTestStage()
	bar := mustBar(t, s, 0, 1)
	ball := mustBall(t, s)
	ball.Body().SetPosition(bar.Penguins()[0].Position())

	group := physics.NewContactGroup()
	cb := BounceCallback(s, s.world.ContactResponse(group))

	s.space.Collide(cb)
	if s.count(event.EventBounce) != 1 {
		t.Fatalf("Expected one bounce, got %d", s.count(event.EventBounce))
	}
	if group.Len() == 0 {
		t.Error("Expected the contact response to record contacts")
	}

	s.now = s.now.Add(parameter.BounceCooldown / 2)
	group.Clear()
	s.space.Collide(cb)
	if s.count(event.EventBounce) != 1 {
		t.Errorf("Expected cooldown to drop the bounce, got %d", s.count(event.EventBounce))
	}

	s.now = s.now.Add(parameter.BounceCooldown)
	group.Clear()
	s.space.Collide(cb)
	if s.count(event.EventBounce) != 2 {
		t.Errorf("Expected bounce after cooldown, got %d", s.count(event.EventBounce))
	}
}
