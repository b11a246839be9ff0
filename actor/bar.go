package actor

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/input"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/physics"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// PenguinBar is a row of penguins fixed to a rotating bar, hinged on a bar
// that slides along the lateral field axis
//
// Rotation and slide are set by pinning the joint stop ranges, so repeated
// calls with the same input leave the joints unchanged.
type PenguinBar struct {
	stage      Stage
	slot       int
	team       int
	column     float64 // pixel x
	controller input.Controller

	slider      *physics.Body
	sliderJoint *physics.SliderJoint
	rot         *physics.Body
	hinge       *physics.HingeJoint
	penguins    []*physics.Body

	maxSlideExtent float64
	rotating       int
	bounds         vmath.Rect
}

// NewPenguinBar builds the bar of a slot with the given number of penguins
// controller may be nil for an idle bar
func NewPenguinBar(stage Stage, slot, penguins int, controller input.Controller) (*PenguinBar, error) {
	if penguins < 1 {
		return nil, fmt.Errorf("bar %d: %d penguins", slot, penguins)
	}
	w := stage.World()
	bar := &PenguinBar{
		stage:      stage,
		slot:       slot,
		team:       BarTeam(slot),
		column:     BarColumn(slot),
		controller: controller,
	}

	barPos := vmath.PixelToWorld(bar.column, parameter.DisplayHeight/2+parameter.BarOffsetY)
	barPos[2] = parameter.BarHeight

	var err error
	if bar.slider, err = w.NewBody(physics.UnitMass); err != nil {
		return nil, fmt.Errorf("bar %d slider: %w", slot, err)
	}
	bar.slider.SetPosition(barPos)
	if bar.sliderJoint, err = w.NewSliderJoint(bar.slider, nil, mgl64.Vec3{0, 1, 0}); err != nil {
		return nil, fmt.Errorf("bar %d slider joint: %w", slot, err)
	}

	if bar.rot, err = w.NewBody(physics.UnitMass); err != nil {
		return nil, fmt.Errorf("bar %d rotor: %w", slot, err)
	}
	bar.rot.SetPosition(barPos)
	if bar.hinge, err = w.NewHingeJoint(bar.rot, bar.slider, mgl64.Vec3{0, 1, 0}); err != nil {
		return nil, fmt.Errorf("bar %d hinge: %w", slot, err)
	}

	sep := parameter.FieldHeight / float64(penguins)
	first := parameter.FieldTop + sep/2
	radius := vmath.PixelDistToWorld(parameter.PenguinRadius)
	bar.penguins = make([]*physics.Body, penguins)
	for i := range penguins {
		p, err := w.NewBody(physics.UnitMass)
		if err != nil {
			return nil, fmt.Errorf("bar %d penguin %d: %w", slot, i, err)
		}
		p.SetPosition(vmath.PixelToWorld(bar.column, first+sep*float64(i)))
		if _, err := w.NewFixedJoint(p, bar.rot); err != nil {
			return nil, fmt.Errorf("bar %d penguin %d joint: %w", slot, i, err)
		}

		g := stage.Space().AddSphere(p, radius)
		g.Props = physics.GeomProperties{
			Friction:    parameter.PenguinFriction,
			Restitution: parameter.PenguinRestitution,
		}
		g.Owner = bar
		bar.penguins[i] = p
	}

	if penguins == 1 {
		bar.maxSlideExtent = vmath.PixelDistToWorld(parameter.GoalHeight * parameter.KeeperExtentFactor)
	} else {
		bar.maxSlideExtent = vmath.PixelDistToWorld(parameter.FieldHeight) / float64(penguins) / 2
	}

	bar.Rotate(0)
	bar.Slide(0)
	bar.updateBounds()
	return bar, nil
}

// Rotate pins the hinge at π·p/2, mirrored for team 1; ignored during a hard turn
func (b *PenguinBar) Rotate(p float64) {
	if b.rotating > 0 {
		return
	}
	p = vmath.Clamp(p, -1, 1)
	if b.team == 1 {
		p = -p
	}
	t := math.Pi * p / 2
	b.hinge.SetStops(t, t)
}

// Slide pins the slider at a·maxSlideExtent, mirrored for team 1
// The stop window stays inside ±maxSlideExtent
func (b *PenguinBar) Slide(a float64) {
	e := vmath.Clamp(a, -1, 1) * b.maxSlideExtent
	if b.team == 1 {
		e = -e
	}
	lo := min(e, b.maxSlideExtent-parameter.SlideStopGap)
	b.sliderJoint.SetStops(lo, lo+parameter.SlideStopGap)
}

// HardTurn spins the bar toward side for a fixed number of steps
// Calling it again while spinning restarts the countdown
func (b *PenguinBar) HardTurn(side float64) {
	dir := 1.0
	if side < 0 {
		dir = -1
	}
	torque := parameter.HardTurnTorquePerPenguin * float64(len(b.penguins))

	b.rotating = parameter.HardTurnSteps
	b.hinge.SetStops(math.Inf(-1), math.Inf(1))
	b.hinge.SetMotor(dir*parameter.HardTurnVelocity, torque)
	b.hinge.AddTorque(dir * torque)
}

// Update applies the controller, advances a hard turn and refreshes the screen bounds
func (b *PenguinBar) Update(time.Duration) {
	if b.controller != nil {
		b.controller.Control(b)
	}
	if b.rotating > 0 {
		b.rotating--
		if b.rotating == 0 {
			b.hinge.SetMotor(0, 0)
		}
	}
	b.updateBounds()
}

func (b *PenguinBar) updateBounds() {
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range b.penguins {
		_, y := vmath.WorldToPixel(p.Position())
		top = min(top, y-parameter.PenguinRadius)
		bottom = max(bottom, y+parameter.PenguinRadius)
	}
	top = max(top, parameter.FieldTop)
	b.bounds = vmath.Rect{
		X: b.column - parameter.BarSpriteWidth/2,
		Y: top,
		W: parameter.BarSpriteWidth,
		H: max(bottom-top, 0),
	}
}

func (b *PenguinBar) Visual() Visual {
	points := make([][2]float64, len(b.penguins))
	for i, p := range b.penguins {
		x, y := vmath.WorldToPixel(p.Position())
		points[i] = [2]float64{x, y}
	}
	return Visual{
		Kind:   VisualBar,
		Team:   b.team,
		Keeper: len(b.penguins) == 1,
		Angle:  -b.hinge.Angle(),
		Points: points,
	}
}

func (b *PenguinBar) Team() int                    { return b.team }
func (b *PenguinBar) Slot() int                    { return b.slot }
func (b *PenguinBar) Column() float64              { return b.column }
func (b *PenguinBar) Alive() bool                  { return true }
func (b *PenguinBar) Bounds() vmath.Rect           { return b.bounds }
func (b *PenguinBar) Controller() input.Controller { return b.controller }
func (b *PenguinBar) Hinge() *physics.HingeJoint   { return b.hinge }
func (b *PenguinBar) Slider() *physics.SliderJoint { return b.sliderJoint }
func (b *PenguinBar) Penguins() []*physics.Body    { return b.penguins }
func (b *PenguinBar) MaxSlideExtent() float64      { return b.maxSlideExtent }
func (b *PenguinBar) HardTurnRemaining() int       { return b.rotating }
