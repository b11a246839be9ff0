package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// JointParams holds the stop range and motor of one joint axis
// The motor is off while FMax is zero
type JointParams struct {
	LoStop float64
	HiStop float64
	Vel    float64
	FMax   float64
}

// FreeParams has no stops and no motor
func FreeParams() JointParams {
	return JointParams{LoStop: math.Inf(-1), HiStop: math.Inf(1)}
}

// stopCorrection returns the per-step correction that moves v back toward [lo, hi]
func (p JointParams) stopCorrection(v float64) (float64, bool) {
	switch {
	case v < p.LoStop:
		return (p.LoStop - v) * parameter.StopERP, true
	case v > p.HiStop:
		return (p.HiStop - v) * parameter.StopERP, true
	}
	return 0, false
}

// Joint constrains a body, optionally relative to a parent body
// A nil parent is the static environment
type Joint interface {
	Bodies() (body, parent *Body)
}

type drivenJoint interface {
	Joint
	enforce(dt float64)
}

// --- Slider ---

// SliderJoint leaves one translational degree of freedom along Axis
type SliderJoint struct {
	body, parent *Body
	axis         mgl64.Vec3
	origin       mgl64.Vec3 // body position at attach time, relative to parent
	params       JointParams
}

func (j *SliderJoint) Bodies() (*Body, *Body) { return j.body, j.parent }
func (j *SliderJoint) Axis() mgl64.Vec3       { return j.axis }
func (j *SliderJoint) Params() JointParams    { return j.params }
func (j *SliderJoint) SetParams(p JointParams) {
	j.params = p
}

// SetStops sets the allowed position range along the axis
func (j *SliderJoint) SetStops(lo, hi float64) {
	j.params.LoStop, j.params.HiStop = lo, hi
}

func (j *SliderJoint) SetMotor(vel, fmax float64) {
	j.params.Vel, j.params.FMax = vel, fmax
}

func (j *SliderJoint) anchor() mgl64.Vec3 {
	if j.parent == nil {
		return j.origin
	}
	return j.parent.pos.Add(j.origin)
}

// Position is the displacement along the axis since the joint was attached
func (j *SliderJoint) Position() float64 {
	return j.body.pos.Sub(j.anchor()).Dot(j.axis)
}

func (j *SliderJoint) enforce(dt float64) {
	b := j.body
	prev := b.pos
	p := j.Position()

	if j.params.FMax > 0 {
		p += j.params.Vel * dt
	}
	if c, ok := j.params.stopCorrection(p); ok {
		p += c
	}

	b.pos = j.anchor().Add(j.axis.Mul(p))
	b.vel = b.pos.Sub(prev).Mul(1 / dt)
}

// --- Hinge ---

// HingeJoint leaves one rotational degree of freedom about Axis through the parent position
type HingeJoint struct {
	body, parent *Body
	offset       mgl64.Vec3
	params       JointParams
	torque       float64
}

func (j *HingeJoint) Bodies() (*Body, *Body) { return j.body, j.parent }
func (j *HingeJoint) Params() JointParams    { return j.params }
func (j *HingeJoint) SetParams(p JointParams) {
	j.params = p
}

// SetStops sets the allowed angle range; infinite stops release the hinge
func (j *HingeJoint) SetStops(lo, hi float64) {
	j.params.LoStop, j.params.HiStop = lo, hi
}

// SetMotor drives the hinge toward angular velocity vel with at most fmax torque
func (j *HingeJoint) SetMotor(vel, fmax float64) {
	j.params.Vel, j.params.FMax = vel, fmax
}

// AddTorque applies a torque about the hinge axis for the next step
func (j *HingeJoint) AddTorque(t float64) { j.torque += t }

// Angle is the body rotation about the axis, in (-Pi, Pi]
func (j *HingeJoint) Angle() float64 { return j.body.angle }

func (j *HingeJoint) AngularVel() float64 { return j.body.angVel }

func (j *HingeJoint) enforce(dt float64) {
	b := j.body
	prev := b.pos
	inertia := b.mass.Inertia

	w := b.angVel + (j.torque+b.torque)/inertia*dt
	j.torque = 0

	if j.params.FMax > 0 {
		limit := j.params.FMax / inertia * dt
		w += vmath.Clamp(j.params.Vel-w, -limit, limit)
	}

	a := b.angle + w*dt
	if c, ok := j.params.stopCorrection(a); ok {
		a += c
		w = 0
	}

	b.angle = vmath.WrapAngle(a)
	b.angVel = w

	if j.parent != nil {
		b.pos = j.parent.pos.Add(j.offset)
	} else {
		b.pos = j.offset
	}
	b.vel = b.pos.Sub(prev).Mul(1 / dt)
}

// --- Fixed ---

// FixedJoint glues a body to its parent, keeping the offset measured at attach time
type FixedJoint struct {
	body, parent *Body
	local        mgl64.Vec3 // offset in the parent frame
	relAngle     float64
}

func (j *FixedJoint) Bodies() (*Body, *Body) { return j.body, j.parent }

func (j *FixedJoint) enforce(dt float64) {
	b := j.body
	prev := b.pos
	if j.parent == nil {
		b.pos = j.local
		b.vel = mgl64.Vec3{}
		return
	}

	p := j.parent
	b.pos = p.pos.Add(p.Rotation().Rotate(j.local))
	b.axis = p.axis
	b.angle = vmath.WrapAngle(p.angle + j.relAngle)
	b.angVel = p.angVel
	b.vel = b.pos.Sub(prev).Mul(1 / dt)
}

// --- Plane2D ---

// Plane2DJoint keeps a free body on the z = 0 plane
// The X and Y motors emulate rolling friction by pulling the in-plane velocity toward Vel
type Plane2DJoint struct {
	body *Body
	x, y JointParams
}

func (j *Plane2DJoint) Bodies() (*Body, *Body) { return j.body, nil }

func (j *Plane2DJoint) SetXMotor(vel, fmax float64) { j.x.Vel, j.x.FMax = vel, fmax }
func (j *Plane2DJoint) SetYMotor(vel, fmax float64) { j.y.Vel, j.y.FMax = vel, fmax }
func (j *Plane2DJoint) XParams() JointParams        { return j.x }
func (j *Plane2DJoint) YParams() JointParams        { return j.y }

func (j *Plane2DJoint) applyMotors(dt float64) {
	b := j.body
	v := b.vel
	v[0] += motorDelta(j.x, v[0], b.mass.Value, dt)
	v[1] += motorDelta(j.y, v[1], b.mass.Value, dt)
	b.vel = v
}

// lock removes the out-of-plane velocity and rotation about in-plane axes
func (j *Plane2DJoint) lock() {
	b := j.body
	b.vel[2] = 0
	if b.axis.Z() == 0 {
		b.angVel = 0
	}
}

func motorDelta(p JointParams, v, mass, dt float64) float64 {
	if p.FMax <= 0 {
		return 0
	}
	limit := p.FMax / mass * dt
	return vmath.Clamp(p.Vel-v, -limit, limit)
}
