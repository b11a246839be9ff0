package render

import "github.com/gdamore/tcell/v2"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Scale darkens (f < 1) or brightens (f > 1) every channel with clamping
func (dst RGB) Scale(f float64) RGB {
	ch := func(v uint8) uint8 {
		return uint8(min(max(float64(v)*f, 0), 255))
	}
	return RGB{R: ch(dst.R), G: ch(dst.G), B: ch(dst.B)}
}

// Tcell converts to a true-color tcell color
func (dst RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(dst.R), int32(dst.G), int32(dst.B))
}
