package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tuzbolin/parameter"
)

// --- Units ---

// PixelToWorld maps a display pixel to the world plane, origin at the display center, y up
func PixelToWorld(x, y float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(x - parameter.DisplayWidth/2) / parameter.PixelsPerUnit,
		(parameter.DisplayHeight/2 - y) / parameter.PixelsPerUnit,
		0,
	}
}

// WorldToPixel drops z and maps a world point back to display pixels
func WorldToPixel(p mgl64.Vec3) (x, y float64) {
	x = p.X()*parameter.PixelsPerUnit + parameter.DisplayWidth/2
	y = parameter.DisplayHeight/2 - p.Y()*parameter.PixelsPerUnit
	return x, y
}

func PixelDistToWorld(d float64) float64 { return d / parameter.PixelsPerUnit }
func WorldDistToPixel(d float64) float64 { return d * parameter.PixelsPerUnit }

// --- Scalars ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// WrapAngle maps an angle into (-Pi, Pi]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Distance2D is the euclidean distance between two points in sensor or pixel space
func Distance2D(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
