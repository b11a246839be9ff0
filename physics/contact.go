package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/parameter"
)

// ContactJoint is a one-step constraint between the bodies of a contact
type ContactJoint struct {
	Contact ContactGeom

	// Friction and Restitution are the summed tags of both geometries
	// A negative restitution is kept as reported and never bounces
	Friction    float64
	Restitution float64

	b1, b2 *Body

	bias    float64 // target separating velocity
	normalJ float64 // accumulated normal impulse
}

func (c *ContactJoint) Bodies() (*Body, *Body) { return c.b1, c.b2 }

// Geoms returns the contact geometries in callback order
func (c *ContactJoint) Geoms() (*Geom, *Geom) { return c.Contact.G1, c.Contact.G2 }

// ContactGroup owns the contact joints created during one collision pass
type ContactGroup struct {
	joints []*ContactJoint
}

func NewContactGroup() *ContactGroup {
	return &ContactGroup{}
}

// Clear discards every contact of the previous pass
func (g *ContactGroup) Clear() {
	clear(g.joints)
	g.joints = g.joints[:0]
}

func (g *ContactGroup) Len() int { return len(g.joints) }

func (g *ContactGroup) Joints() []*ContactJoint { return g.joints }

func (g *ContactGroup) add(c *ContactJoint) { g.joints = append(g.joints, c) }

// ContactResponse returns the near callback that tests a pair and records its contacts in group
// The group is solved by Step until it is cleared
func (w *World) ContactResponse(group *ContactGroup) NearCallback {
	w.attachGroup(group)
	return func(g1, g2 *Geom) {
		friction := g1.Props.Friction + g2.Props.Friction
		restitution := g1.Props.Restitution + g2.Props.Restitution

		for _, cg := range Collide(g1, g2) {
			group.add(&ContactJoint{
				Contact:     cg,
				Friction:    friction,
				Restitution: restitution,
				b1:          g1.body,
				b2:          g2.body,
			})
		}
	}
}

func (c *ContactJoint) active() bool {
	if c.b1 != nil && c.b1.removed || c.b2 != nil && c.b2.removed {
		return false
	}
	return c.b1.invMass()+c.b2.invMass() > 0
}

func (c *ContactJoint) prepare() {
	c.normalJ = 0
	c.bias = 0

	vn := c.b1.velocity().Sub(c.b2.velocity()).Dot(c.Contact.Normal)
	e := math.Min(math.Max(c.Restitution, 0), 1)
	if vn < -parameter.BounceVelocity {
		c.bias = -e * vn
	}
}

// solve applies one sequential impulse pass for the normal and friction directions
func (c *ContactJoint) solve() {
	inv1, inv2 := c.b1.invMass(), c.b2.invMass()
	invSum := inv1 + inv2
	n := c.Contact.Normal

	rel := c.b1.velocity().Sub(c.b2.velocity())
	vn := rel.Dot(n)

	j := (c.bias - vn) / invSum
	total := math.Max(c.normalJ+j, 0)
	j = total - c.normalJ
	c.normalJ = total
	c.applyImpulse(n.Mul(j), inv1, inv2)

	if c.Friction <= 0 {
		return
	}
	rel = c.b1.velocity().Sub(c.b2.velocity())
	tangent := rel.Sub(n.Mul(rel.Dot(n)))
	speed := tangent.Len()
	if speed < 1e-9 {
		return
	}
	jt := math.Min(speed/invSum, c.Friction*c.normalJ)
	c.applyImpulse(tangent.Mul(-jt/speed), inv1, inv2)
}

func (c *ContactJoint) applyImpulse(imp mgl64.Vec3, inv1, inv2 float64) {
	if inv1 > 0 {
		c.b1.vel = c.b1.vel.Add(imp.Mul(inv1))
	}
	if inv2 > 0 {
		c.b2.vel = c.b2.vel.Sub(imp.Mul(inv2))
	}
}

// correct pushes the bodies apart along the normal by a fraction of the penetration
func (c *ContactJoint) correct() {
	depth := c.Contact.Depth - parameter.ContactSlop
	if depth <= 0 {
		return
	}
	inv1, inv2 := c.b1.invMass(), c.b2.invMass()
	push := depth * parameter.ContactERP / (inv1 + inv2)
	n := c.Contact.Normal
	if inv1 > 0 {
		c.b1.pos = c.b1.pos.Add(n.Mul(push * inv1))
	}
	if inv2 > 0 {
		c.b2.pos = c.b2.pos.Sub(n.Mul(push * inv2))
	}
}
