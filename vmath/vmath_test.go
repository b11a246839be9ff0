package vmath

import (
	"math"
	"testing"

	"github.com/lixenwraith/tuzbolin/parameter"
)

func TestPixelWorldRoundTrip(t *testing.T) {
	points := [][2]float64{{0, 0}, {512, 384}, {1024, 768}, {62, 109}, {300.5, 17.25}}
	for _, p := range points {
		w := PixelToWorld(p[0], p[1])
		if w.Z() != 0 {
			t.Errorf("Expected z 0 for %v, got %f", p, w.Z())
		}
		x, y := WorldToPixel(w)
		if math.Abs(x-p[0]) > 1e-9 || math.Abs(y-p[1]) > 1e-9 {
			t.Errorf("Expected %v, got (%f, %f)", p, x, y)
		}
	}
}

func TestPixelToWorldOrientation(t *testing.T) {
	center := PixelToWorld(parameter.DisplayWidth/2, parameter.DisplayHeight/2)
	if center.Len() != 0 {
		t.Errorf("Expected display center at origin, got %v", center)
	}

	up := PixelToWorld(parameter.DisplayWidth/2, parameter.DisplayHeight/2-parameter.PixelsPerUnit)
	if math.Abs(up.Y()-1) > 1e-9 {
		t.Errorf("Expected screen-up to be world +1 y, got %f", up.Y())
	}
}

func TestDistanceConversion(t *testing.T) {
	if got := PixelDistToWorld(170); got != 1 {
		t.Errorf("Expected 1, got %f", got)
	}
	if got := WorldDistToPixel(PixelDistToWorld(42)); math.Abs(got-42) > 1e-9 {
		t.Errorf("Expected 42, got %f", got)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}

func TestRectOverlaps(t *testing.T) {
	goal := Rect{X: 62, Y: 334, W: 20, H: 100}

	inside := RectFromCenter(75, 384, 20, 20)
	if !goal.Overlaps(inside) {
		t.Error("Expected overlapping rect to overlap")
	}

	touching := Rect{X: 82, Y: 380, W: 20, H: 20}
	if goal.Overlaps(touching) {
		t.Error("Expected edge contact not to count as overlap")
	}

	u := goal.Union(touching)
	if u.X != 62 || u.Right() != 102 {
		t.Errorf("Expected union x range [62,102], got [%f,%f]", u.X, u.Right())
	}
}

func TestClampAndSign(t *testing.T) {
	if got := Clamp(1.5, -1, 1); got != 1 {
		t.Errorf("Expected 1, got %f", got)
	}
	if got := Clamp(-3, -1, 1); got != -1 {
		t.Errorf("Expected -1, got %f", got)
	}
	if got := Clamp(0.25, -1, 1); got != 0.25 {
		t.Errorf("Expected 0.25, got %f", got)
	}
	for in, want := range map[float64]float64{-2: -1, 0: 0, 0.1: 1} {
		if got := Sign(in); got != want {
			t.Errorf("Sign(%f): expected %f, got %f", in, want, got)
		}
	}
}
