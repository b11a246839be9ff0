package actor

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/physics"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// Goal is a scoring rectangle and the team credited when a ball enters it
type Goal struct {
	Rect vmath.Rect
	Team int
}

// Field holds the static playfield: four boundary planes and two goals
type Field struct {
	Walls [4]*physics.Geom
	Goals [2]Goal
	Rect  vmath.Rect
}

// NewField adds the boundary planes to space
// Plane normals point into the field; the free side satisfies n·p > d
func NewField(space *physics.Space) *Field {
	hw := vmath.PixelDistToWorld(parameter.FieldWidth / 2)
	hh := vmath.PixelDistToWorld(parameter.FieldHeight / 2)

	f := &Field{
		Rect: vmath.Rect{
			X: parameter.FieldLeft, Y: parameter.FieldTop,
			W: parameter.FieldWidth, H: parameter.FieldHeight,
		},
	}
	f.Walls[0] = space.AddPlane(mgl64.Vec3{0, -1, 0}, -hh) // north
	f.Walls[1] = space.AddPlane(mgl64.Vec3{0, 1, 0}, -hh)  // south
	f.Walls[2] = space.AddPlane(mgl64.Vec3{1, 0, 0}, -hw)  // west
	f.Walls[3] = space.AddPlane(mgl64.Vec3{-1, 0, 0}, -hw) // east

	midY := parameter.FieldTop + parameter.FieldHeight/2
	// A goal index is the index of the team it credits
	f.Goals[0] = Goal{
		Rect: vmath.RectFromCenter(parameter.FieldLeft, midY, parameter.GoalWidth, parameter.GoalHeight),
		Team: 0,
	}
	f.Goals[1] = Goal{
		Rect: vmath.RectFromCenter(parameter.FieldLeft+parameter.FieldWidth, midY, parameter.GoalWidth, parameter.GoalHeight),
		Team: 1,
	}
	return f
}

// GoalAt returns the first goal overlapping r
func (f *Field) GoalAt(r vmath.Rect) (Goal, bool) {
	for _, g := range f.Goals {
		if g.Rect.Overlaps(r) {
			return g, true
		}
	}
	return Goal{}, false
}

// BarColumn is the pixel x of a bar slot, slots evenly spread over the field width
func BarColumn(slot int) float64 {
	return parameter.FieldLeft + parameter.BarSeparation/2 + parameter.BarSeparation*float64(slot)
}

// BarTeam returns the team owning a bar slot
func BarTeam(slot int) int {
	return parameter.BarTeams[slot%parameter.NumBars]
}
