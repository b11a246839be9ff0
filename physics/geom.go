package physics

import "github.com/go-gl/mathgl/mgl64"

type GeomKind uint8

const (
	GeomSphere GeomKind = iota
	GeomPlane
)

// GeomProperties are the surface tags read by the contact response
// Both default to zero
type GeomProperties struct {
	Friction    float64
	Restitution float64
}

// Geom is a collision shape attached to at most one body
// Planes are static: points p with Normal·p = D lie on the surface and the free
// half-space is Normal·p > D
type Geom struct {
	id    uint64
	kind  GeomKind
	body  *Body
	space *Space

	Radius float64
	Normal mgl64.Vec3
	D      float64

	Props GeomProperties

	// Owner is an opaque handle for the code that created the geometry
	Owner any
}

func (g *Geom) ID() uint64     { return g.id }
func (g *Geom) Kind() GeomKind { return g.kind }
func (g *Geom) Body() *Body    { return g.body }
func (g *Geom) Space() *Space  { return g.space }

// Position is the body position for spheres and the plane point closest to the origin for planes
func (g *Geom) Position() mgl64.Vec3 {
	if g.kind == GeomPlane {
		return g.Normal.Mul(g.D)
	}
	if g.body == nil {
		return mgl64.Vec3{}
	}
	return g.body.pos
}

// ContactGeom is one contact point between two geometries
// Normal points from G2 toward G1: moving G1 by Normal·Depth separates them
type ContactGeom struct {
	Pos    mgl64.Vec3
	Normal mgl64.Vec3
	Depth  float64
	G1, G2 *Geom
}

// Collide is the narrow phase; it returns nil when the geometries do not touch
func Collide(g1, g2 *Geom) []ContactGeom {
	switch {
	case g1.kind == GeomSphere && g2.kind == GeomSphere:
		return collideSpheres(g1, g2)
	case g1.kind == GeomSphere && g2.kind == GeomPlane:
		return collideSpherePlane(g1, g2, false)
	case g1.kind == GeomPlane && g2.kind == GeomSphere:
		return collideSpherePlane(g2, g1, true)
	}
	return nil
}

func collideSpheres(g1, g2 *Geom) []ContactGeom {
	p1, p2 := g1.Position(), g2.Position()
	d := p1.Sub(p2)
	dist := d.Len()
	depth := g1.Radius + g2.Radius - dist
	if depth < 0 {
		return nil
	}

	n := mgl64.Vec3{1, 0, 0}
	if dist > 0 {
		n = d.Mul(1 / dist)
	}
	return []ContactGeom{{
		Pos:    p1.Sub(n.Mul(g1.Radius - depth/2)),
		Normal: n,
		Depth:  depth,
		G1:     g1,
		G2:     g2,
	}}
}

func collideSpherePlane(sphere, plane *Geom, swapped bool) []ContactGeom {
	c := sphere.Position()
	depth := plane.D - plane.Normal.Dot(c) + sphere.Radius
	if depth < 0 {
		return nil
	}

	cg := ContactGeom{
		Pos:    c.Sub(plane.Normal.Mul(sphere.Radius)),
		Normal: plane.Normal,
		Depth:  depth,
		G1:     sphere,
		G2:     plane,
	}
	if swapped {
		cg.Normal = cg.Normal.Mul(-1)
		cg.G1, cg.G2 = plane, sphere
	}
	return []ContactGeom{cg}
}
