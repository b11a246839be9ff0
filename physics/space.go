package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NearCallback receives every candidate pair found by the broad phase
type NearCallback func(g1, g2 *Geom)

type cellKey struct {
	x, y, z int
}

type pairKey struct {
	a, b uint64
}

// Space holds collision geometries and finds candidate pairs with a uniform hash grid
// Spheres are hashed by their bounding box; planes are paired with every sphere
type Space struct {
	cellSize float64
	spheres  []*Geom
	planes   []*Geom
	nextID   uint64

	// Reused between Collide calls
	cells map[cellKey][]*Geom
	seen  map[pairKey]struct{}
}

// NewSpace creates a space with the given grid cell size in world units
func NewSpace(cellSize float64) *Space {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Space{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*Geom),
		seen:     make(map[pairKey]struct{}),
	}
}

// AddSphere attaches a sphere of the given radius to body
func (s *Space) AddSphere(body *Body, radius float64) *Geom {
	s.nextID++
	g := &Geom{id: s.nextID, kind: GeomSphere, body: body, space: s, Radius: radius}
	if body != nil {
		body.geoms = append(body.geoms, g)
	}
	s.spheres = append(s.spheres, g)
	return g
}

// AddPlane adds a static plane Normal·p = d; normal is normalized
func (s *Space) AddPlane(normal mgl64.Vec3, d float64) *Geom {
	s.nextID++
	if l := normal.Len(); l > 0 {
		normal = normal.Mul(1 / l)
	}
	g := &Geom{id: s.nextID, kind: GeomPlane, space: s, Normal: normal, D: d}
	s.planes = append(s.planes, g)
	return g
}

// Remove detaches g from the space and from its body
func (s *Space) Remove(g *Geom) {
	if g == nil || g.space != s {
		return
	}
	if g.kind == GeomPlane {
		s.planes = removeGeom(s.planes, g)
	} else {
		s.spheres = removeGeom(s.spheres, g)
	}
	if g.body != nil {
		g.body.geoms = removeGeom(g.body.geoms, g)
	}
	g.space = nil
}

func (s *Space) Len() int { return len(s.spheres) + len(s.planes) }

// Collide calls cb once for each candidate pair
// Pairs on the same body and pairs of two static geometries are skipped
func (s *Space) Collide(cb NearCallback) {
	for k, list := range s.cells {
		s.cells[k] = list[:0]
	}
	clear(s.seen)

	for _, g := range s.spheres {
		lo, hi := s.cellRange(g)
		for x := lo.x; x <= hi.x; x++ {
			for y := lo.y; y <= hi.y; y++ {
				for z := lo.z; z <= hi.z; z++ {
					k := cellKey{x, y, z}
					for _, other := range s.cells[k] {
						if !candidate(g, other) {
							continue
						}
						pk := pairKey{other.id, g.id}
						if _, dup := s.seen[pk]; dup {
							continue
						}
						s.seen[pk] = struct{}{}
						cb(other, g)
					}
					s.cells[k] = append(s.cells[k], g)
				}
			}
		}
	}

	for _, p := range s.planes {
		for _, g := range s.spheres {
			if g.body == nil {
				continue
			}
			cb(g, p)
		}
	}
}

func candidate(a, b *Geom) bool {
	if a.body == nil && b.body == nil {
		return false
	}
	return a.body != b.body
}

func (s *Space) cellRange(g *Geom) (cellKey, cellKey) {
	p := g.Position()
	r := g.Radius
	return s.cellOf(p.X()-r, p.Y()-r, p.Z()-r), s.cellOf(p.X()+r, p.Y()+r, p.Z()+r)
}

func (s *Space) cellOf(x, y, z float64) cellKey {
	return cellKey{
		int(math.Floor(x / s.cellSize)),
		int(math.Floor(y / s.cellSize)),
		int(math.Floor(z / s.cellSize)),
	}
}

func removeGeom(list []*Geom, g *Geom) []*Geom {
	for i, o := range list {
		if o == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
