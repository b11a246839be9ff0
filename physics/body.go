package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mass describes a body's resistance to linear and angular acceleration
type Mass struct {
	Value   float64
	Inertia float64 // about the body's rotation axis
}

// UnitMass is the mass given to bodies that only carry joints
var UnitMass = Mass{Value: 1, Inertia: 1}

// SphereMass returns the mass of a solid sphere of the given density and radius
func SphereMass(density, radius float64) Mass {
	m := density * 4.0 / 3.0 * math.Pi * radius * radius * radius
	return Mass{Value: m, Inertia: 0.4 * m * radius * radius}
}

func (m Mass) valid() bool {
	return m.Value > 0 && m.Inertia > 0 && !math.IsInf(m.Value, 0) && !math.IsNaN(m.Value)
}

// Body is a rigid body with a single rotational degree of freedom about Axis
// Bodies constrained by slider, hinge or fixed joints are driven: their motion
// comes from the joint and contacts treat them as immovable
type Body struct {
	world *World
	id    uint64

	pos   mgl64.Vec3
	vel   mgl64.Vec3
	force mgl64.Vec3

	axis   mgl64.Vec3
	angle  float64
	angVel float64
	torque float64

	mass   Mass
	geoms  []*Geom
	driven bool
	plane  *Plane2DJoint

	removed bool
}

func (b *Body) ID() uint64 { return b.id }

func (b *Body) Position() mgl64.Vec3     { return b.pos }
func (b *Body) SetPosition(p mgl64.Vec3) { b.pos = p }

func (b *Body) LinearVel() mgl64.Vec3     { return b.vel }
func (b *Body) SetLinearVel(v mgl64.Vec3) { b.vel = v }

// AddForce accumulates a force applied at the center of mass until the next step
func (b *Body) AddForce(f mgl64.Vec3) { b.force = b.force.Add(f) }
func (b *Body) Force() mgl64.Vec3     { return b.force }

func (b *Body) Axis() mgl64.Vec3          { return b.axis }
func (b *Body) Angle() float64            { return b.angle }
func (b *Body) AngularVel() float64       { return b.angVel }
func (b *Body) SetAngularVel(w float64)   { b.angVel = w }
func (b *Body) AddTorque(t float64)       { b.torque += t }
func (b *Body) Torque() float64           { return b.torque }
func (b *Body) Mass() Mass                { return b.mass }
func (b *Body) Driven() bool              { return b.driven }
func (b *Body) Removed() bool             { return b.removed }
func (b *Body) Geoms() []*Geom            { return b.geoms }
func (b *Body) PlaneJoint() *Plane2DJoint { return b.plane }

// Rotation returns the body orientation as a quaternion
func (b *Body) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(b.angle, b.axis)
}

// invMass is zero for driven and removed bodies
func (b *Body) invMass() float64 {
	if b == nil || b.driven || b.removed {
		return 0
	}
	return 1 / b.mass.Value
}

func (b *Body) velocity() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	return b.vel
}

func (b *Body) clearAccumulators() {
	b.force = mgl64.Vec3{}
	b.torque = 0
}
