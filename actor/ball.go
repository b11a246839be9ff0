package actor

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/event"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/physics"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// Ball is a free sphere held on the field plane
// Planar motors pulling toward zero velocity emulate rolling friction
type Ball struct {
	stage Stage
	body  *physics.Body
	geom  *physics.Geom
	plane *physics.Plane2DJoint

	radius     float64 // pixels
	bounds     vmath.Rect
	alive      bool
	lastBounce time.Time
}

// NewBall creates a ball of the given pixel radius at the field center
func NewBall(stage Stage, radius float64) (*Ball, error) {
	r := vmath.PixelDistToWorld(radius)
	body, err := stage.World().NewBody(physics.SphereMass(parameter.BallDensity, r))
	if err != nil {
		return nil, fmt.Errorf("ball body: %w", err)
	}
	body.SetPosition(mgl64.Vec3{})

	plane, err := stage.World().NewPlane2DJoint(body)
	if err != nil {
		stage.World().RemoveBody(body)
		return nil, fmt.Errorf("ball plane joint: %w", err)
	}
	plane.SetXMotor(0, parameter.FieldFriction)
	plane.SetYMotor(0, parameter.FieldFriction)

	b := &Ball{
		stage:  stage,
		body:   body,
		plane:  plane,
		radius: radius,
		alive:  true,
	}
	b.geom = stage.Space().AddSphere(body, r)
	b.geom.Props = physics.GeomProperties{
		Friction:    parameter.BallFriction,
		Restitution: parameter.BallRestitution,
	}
	b.geom.Owner = b
	b.updateBounds()
	return b, nil
}

// SpawnExtraBall adds a large ball to the stage and kicks it off
func SpawnExtraBall(stage Stage) (*Ball, error) {
	b, err := NewBall(stage, parameter.ExtraBallRadius)
	if err != nil {
		return nil, err
	}
	stage.AddBall(b)
	stage.Emit(event.EventExtraBall, &event.KickoffPayload{BallID: b.body.ID()})
	b.Kickoff()
	return b, nil
}

func (b *Ball) updateBounds() {
	x, y := vmath.WorldToPixel(b.body.Position())
	b.bounds = vmath.RectFromCenter(x, y, b.radius*2, b.radius*2)
}

// Update scores the ball when it reaches a goal; otherwise it re-pins z,
// pulls the ball toward the center line and kicks off a ball stalled there
func (b *Ball) Update(time.Duration) {
	if !b.alive {
		return
	}
	b.updateBounds()

	if goal, ok := b.stage.Field().GoalAt(b.bounds); ok {
		score := b.stage.AddScore(goal.Team)
		b.stage.Emit(event.EventGoalScored, &event.GoalPayload{Team: goal.Team, Score: score})
		b.stage.AddEffect(NewGoalAnimation(b.stage))
		b.Kill()
		return
	}

	pos := b.body.Position()
	b.body.SetPosition(mgl64.Vec3{pos.X(), pos.Y(), 0})

	cx, _ := b.bounds.Center()
	factor := (parameter.DisplayWidth/2 - cx) / (parameter.FieldWidth / 2)
	b.body.AddForce(mgl64.Vec3{factor * parameter.FieldConcaveFactor, 0, 0})

	vel := b.body.LinearVel()
	if vel.X()*vel.X()+vel.Y()*vel.Y() < parameter.KickoffSpeedSq && math.Abs(pos.X()) < parameter.KickoffCenterDist {
		b.Kickoff()
	}
}

// Kickoff puts the ball at the center and pushes it with a random force
func (b *Ball) Kickoff() {
	rng := b.stage.Rand()
	b.body.SetPosition(mgl64.Vec3{})
	b.body.AddForce(mgl64.Vec3{
		rng.Float64()*parameter.KickoffForceX - parameter.KickoffForceX/2,
		rng.Float64()*parameter.KickoffForceY - parameter.KickoffForceY/2,
		0,
	})
	b.stage.Emit(event.EventKickoff, &event.KickoffPayload{BallID: b.body.ID()})
}

// Bounce reports a penguin contact; repeated contacts inside the cooldown are dropped
func (b *Ball) Bounce(now time.Time) {
	if !b.alive || now.Sub(b.lastBounce) < parameter.BounceCooldown {
		return
	}
	b.lastBounce = now
	b.stage.Emit(event.EventBounce, &event.BouncePayload{
		BallID: b.body.ID(),
		Speed:  b.body.LinearVel().Len(),
	})
}

// Kill removes the ball body and its geometry from the simulation
func (b *Ball) Kill() {
	if !b.alive {
		return
	}
	b.alive = false
	b.stage.World().RemoveBody(b.body)
	log.Printf("ball %d removed", b.body.ID())
}

func (b *Ball) Alive() bool                  { return b.alive }
func (b *Ball) Bounds() vmath.Rect           { return b.bounds }
func (b *Ball) Body() *physics.Body          { return b.body }
func (b *Ball) Geom() *physics.Geom          { return b.geom }
func (b *Ball) Plane() *physics.Plane2DJoint { return b.plane }
func (b *Ball) Radius() float64              { return b.radius }

func (b *Ball) Visual() Visual {
	return Visual{Kind: VisualBall, Scale: b.radius / parameter.BallRadius}
}
