package physics

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/parameter"
)

var (
	ErrInvalidMass  = errors.New("invalid body mass")
	ErrInvalidJoint = errors.New("invalid joint")
)

// World owns bodies and joints and advances them in fixed order each step
type World struct {
	bodies []*Body
	driven []drivenJoint
	planes []*Plane2DJoint
	groups []*ContactGroup
	nextID uint64
}

func NewWorld() *World {
	return &World{}
}

// NewBody creates a body at the origin rotating about z
func (w *World) NewBody(m Mass) (*Body, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidMass, m)
	}
	w.nextID++
	b := &Body{
		world: w,
		id:    w.nextID,
		axis:  mgl64.Vec3{0, 0, 1},
		mass:  m,
	}
	w.bodies = append(w.bodies, b)
	return b, nil
}

// RemoveBody destroys b together with its geometries and joints
func (w *World) RemoveBody(b *Body) {
	if b == nil || b.world != w || b.removed {
		return
	}
	b.removed = true

	for _, g := range slices.Clone(b.geoms) {
		if g.space != nil {
			g.space.Remove(g)
		}
	}
	b.geoms = nil

	w.bodies = slices.DeleteFunc(w.bodies, func(o *Body) bool { return o == b })
	w.driven = slices.DeleteFunc(w.driven, func(j drivenJoint) bool {
		body, parent := j.Bodies()
		return body == b || parent == b
	})
	w.planes = slices.DeleteFunc(w.planes, func(j *Plane2DJoint) bool { return j.body == b })
	b.plane = nil
}

func (w *World) Bodies() []*Body { return w.bodies }

func (w *World) checkJoint(b, parent *Body) error {
	if b == nil || b.world != w || b.removed {
		return fmt.Errorf("%w: body not in world", ErrInvalidJoint)
	}
	if parent != nil && (parent.world != w || parent.removed || parent == b) {
		return fmt.Errorf("%w: bad parent", ErrInvalidJoint)
	}
	if b.plane != nil {
		return fmt.Errorf("%w: body %d is on a plane joint", ErrInvalidJoint, b.id)
	}
	return nil
}

func unitAxis(axis mgl64.Vec3) (mgl64.Vec3, error) {
	l := axis.Len()
	if l == 0 {
		return axis, fmt.Errorf("%w: zero axis", ErrInvalidJoint)
	}
	return axis.Mul(1 / l), nil
}

// NewSliderJoint lets b move along axis relative to parent, or to the environment when parent is nil
func (w *World) NewSliderJoint(b, parent *Body, axis mgl64.Vec3) (*SliderJoint, error) {
	if err := w.checkJoint(b, parent); err != nil {
		return nil, err
	}
	axis, err := unitAxis(axis)
	if err != nil {
		return nil, err
	}
	j := &SliderJoint{body: b, parent: parent, axis: axis, origin: b.pos, params: FreeParams()}
	if parent != nil {
		j.origin = b.pos.Sub(parent.pos)
	}
	b.driven = true
	w.driven = append(w.driven, j)
	return j, nil
}

// NewHingeJoint lets b rotate about axis, anchored at its current position relative to parent
func (w *World) NewHingeJoint(b, parent *Body, axis mgl64.Vec3) (*HingeJoint, error) {
	if err := w.checkJoint(b, parent); err != nil {
		return nil, err
	}
	axis, err := unitAxis(axis)
	if err != nil {
		return nil, err
	}
	j := &HingeJoint{body: b, parent: parent, offset: b.pos, params: FreeParams()}
	if parent != nil {
		j.offset = b.pos.Sub(parent.pos)
	}
	b.axis = axis
	b.angle = 0
	b.driven = true
	w.driven = append(w.driven, j)
	return j, nil
}

// NewFixedJoint glues b to parent at their current relative placement
func (w *World) NewFixedJoint(b, parent *Body) (*FixedJoint, error) {
	if err := w.checkJoint(b, parent); err != nil {
		return nil, err
	}
	j := &FixedJoint{body: b, parent: parent, local: b.pos}
	if parent != nil {
		j.local = parent.Rotation().Inverse().Rotate(b.pos.Sub(parent.pos))
		j.relAngle = b.angle - parent.angle
		b.axis = parent.axis
	}
	b.driven = true
	w.driven = append(w.driven, j)
	return j, nil
}

// NewPlane2DJoint binds a free body to the z = 0 plane; a body takes at most one
func (w *World) NewPlane2DJoint(b *Body) (*Plane2DJoint, error) {
	if b == nil || b.world != w || b.removed {
		return nil, fmt.Errorf("%w: body not in world", ErrInvalidJoint)
	}
	if b.plane != nil {
		return nil, fmt.Errorf("%w: body %d already on a plane joint", ErrInvalidJoint, b.id)
	}
	if b.driven {
		return nil, fmt.Errorf("%w: body %d is driven by another joint", ErrInvalidJoint, b.id)
	}
	j := &Plane2DJoint{body: b, x: FreeParams(), y: FreeParams()}
	b.plane = j
	w.planes = append(w.planes, j)
	return j, nil
}

func (w *World) attachGroup(g *ContactGroup) {
	if !slices.Contains(w.groups, g) {
		w.groups = append(w.groups, g)
	}
}

// Step advances the simulation by dt seconds:
// forces, planar motors, contacts, integration, driven joints, then accumulators are cleared
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		if b.driven {
			continue
		}
		b.vel = b.vel.Add(b.force.Mul(dt / b.mass.Value))
		b.angVel += b.torque / b.mass.Inertia * dt
	}

	for _, p := range w.planes {
		p.applyMotors(dt)
	}

	var contacts []*ContactJoint
	for _, g := range w.groups {
		for _, c := range g.joints {
			if c.active() {
				c.prepare()
				contacts = append(contacts, c)
			}
		}
	}
	for range parameter.ContactIterations {
		for _, c := range contacts {
			c.solve()
		}
	}
	for _, c := range contacts {
		c.correct()
	}

	for _, p := range w.planes {
		p.lock()
	}

	for _, b := range w.bodies {
		if b.driven {
			continue
		}
		b.pos = b.pos.Add(b.vel.Mul(dt))
		b.angle += b.angVel * dt
	}

	for _, j := range w.driven {
		j.enforce(dt)
	}

	for _, b := range w.bodies {
		b.clearAccumulators()
	}
}
