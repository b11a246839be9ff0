package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuzbolin/actor"
	"github.com/lixenwraith/tuzbolin/engine"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// Glyphs
const (
	ballRune      = '●'
	extraBallRune = '◉'
	rodRune       = '│'
	midLineRune   = '┆'
	irRuneBase    = '1'
)

// penguinRunes go from standing to lying flat, indexed by |angle| in quarter steps of π/2
var penguinRunes = [...]rune{'█', '▓', '▒', '▬'}

// spectatorFrames is the crowd animation strip
var spectatorFrames = [parameter.SpectatorFrames]string{
	`\o/`, `|o|`, `/o\`, `|o|`, `\o/`, `_o_`, `\o_`, `_o/`,
}

// Terminal draws frames on a tcell screen, fitting the display pixel space to the cell grid
// A cell is assumed twice as tall as wide
type Terminal struct {
	screen tcell.Screen
	buf    *RenderBuffer
	color  bool

	width  int
	height int
	// scale is columns per display pixel; rows per pixel is half of it
	scale float64
	offX  int
	offY  int
}

// NewTerminal creates a renderer for an initialized screen
func NewTerminal(screen tcell.Screen, color bool) *Terminal {
	t := &Terminal{
		screen: screen,
		buf:    NewRenderBuffer(0, 0),
		color:  color,
	}
	t.resize(screen.Size())
	return t
}

func (t *Terminal) resize(w, h int) {
	t.width, t.height = w, h
	t.buf.Resize(w, h)
	t.scale = max(min(float64(w)/parameter.DisplayWidth, 2*float64(h)/parameter.DisplayHeight), 0)
	t.offX = (w - int(parameter.DisplayWidth*t.scale)) / 2
	t.offY = (h - int(parameter.DisplayHeight*t.scale/2)) / 2
}

// CellAt maps a display pixel to its terminal cell
func (t *Terminal) CellAt(x, y float64) (int, int) {
	return t.offX + int(math.Floor(x*t.scale)), t.offY + int(math.Floor(y*t.scale/2))
}

// cellRect maps a pixel rectangle to the half-open cell range it covers, at least one cell
func (t *Terminal) cellRect(r vmath.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = t.CellAt(r.X, r.Y)
	x1, y1 = t.CellAt(r.Right(), r.Bottom())
	return x0, y0, max(x1, x0+1), max(y1, y0+1)
}

// Present implements engine.Presenter
func (t *Terminal) Present(f *engine.Frame) {
	if w, h := t.screen.Size(); w != t.width || h != t.height {
		t.resize(w, h)
	} else {
		t.buf.Clear()
	}
	if t.scale > 0 {
		t.drawField()
		for _, a := range f.Actors {
			t.drawActor(a)
		}
		t.drawLines(f.Lines)
		if f.Debug {
			t.drawDebug(f)
		}
	}

	t.buf.Flush(t.screen, t.color)
	t.screen.Show()
}

func (t *Terminal) drawField() {
	field := vmath.Rect{X: parameter.FieldLeft, Y: parameter.FieldTop, W: parameter.FieldWidth, H: parameter.FieldHeight}
	x0, y0, x1, y1 := t.cellRect(field)
	t.buf.FillRect(x0, y0, x1, y1, RgbField, 1)

	for x := x0; x < x1; x++ {
		t.buf.Set(x, y0-1, '─', RgbFieldLine, tcell.AttrNone)
		t.buf.Set(x, y1, '─', RgbFieldLine, tcell.AttrNone)
	}
	for y := y0; y < y1; y++ {
		t.buf.Set(x0-1, y, '│', RgbFieldLine, tcell.AttrNone)
		t.buf.Set(x1, y, '│', RgbFieldLine, tcell.AttrNone)
	}
	t.buf.Set(x0-1, y0-1, '┌', RgbFieldLine, tcell.AttrNone)
	t.buf.Set(x1, y0-1, '┐', RgbFieldLine, tcell.AttrNone)
	t.buf.Set(x0-1, y1, '└', RgbFieldLine, tcell.AttrNone)
	t.buf.Set(x1, y1, '┘', RgbFieldLine, tcell.AttrNone)

	mid, _ := t.CellAt(parameter.DisplayWidth/2, 0)
	for y := y0; y < y1; y++ {
		t.buf.Set(mid, y, midLineRune, RgbFieldLine, tcell.AttrNone)
	}

	midY := parameter.FieldTop + parameter.FieldHeight/2
	for _, gx := range [2]float64{parameter.FieldLeft, parameter.FieldLeft + parameter.FieldWidth} {
		gx0, gy0, gx1, gy1 := t.cellRect(vmath.RectFromCenter(gx, midY, parameter.GoalWidth, parameter.GoalHeight))
		t.buf.FillRect(gx0, gy0, gx1, gy1, RgbGoal, 1)
		for y := gy0; y < gy1; y++ {
			for x := gx0; x < gx1; x++ {
				t.buf.Set(x, y, '▒', RgbGoal, tcell.AttrNone)
			}
		}
	}
}

func (t *Terminal) drawActor(a engine.ActorView) {
	v := a.Visual
	if v.Hidden {
		return
	}
	switch v.Kind {
	case actor.VisualBall:
		x, y := t.CellAt(a.Bounds.Center())
		r := rune(ballRune)
		if v.Scale > 1 {
			r = extraBallRune
		}
		t.buf.Set(x, y, r, RgbBall, tcell.AttrBold)

	case actor.VisualBar:
		t.drawBar(a)

	case actor.VisualText:
		cx, cy := t.CellAt(a.Bounds.Center())
		t.centered(cx, cy, v.Text, RgbText, tcell.AttrBold)

	case actor.VisualBanner:
		t.drawBanner(a)

	case actor.VisualSpectator:
		cx, cy := t.CellAt(a.Bounds.Center())
		t.centered(cx, cy, spectatorFrames[v.Frame%len(spectatorFrames)], RgbSpectator, tcell.AttrNone)
	}
}

func (t *Terminal) drawBar(a engine.ActorView) {
	v := a.Visual
	rx, _ := t.CellAt(a.Bounds.Center())
	_, top := t.CellAt(0, parameter.FieldTop)
	_, bottom := t.CellAt(0, parameter.FieldTop+parameter.FieldHeight)
	for y := top; y < bottom; y++ {
		t.buf.Set(rx, y, rodRune, teamRod(v.Team), tcell.AttrNone)
	}

	r := PenguinRune(v.Angle)
	attrs := tcell.AttrNone
	if v.Keeper {
		attrs = tcell.AttrBold
	}
	for _, p := range v.Points {
		x, y := t.CellAt(p[0], p[1])
		t.buf.Set(x, y, r, RgbTeam[v.Team&1], attrs)
	}
}

// PenguinRune picks the penguin glyph for a bar angle seen from above
func PenguinRune(angle float64) rune {
	a := math.Abs(math.Remainder(angle, 2*math.Pi))
	if a > math.Pi/2 {
		a = math.Pi - a
	}
	i := int(a / (math.Pi / 2) * float64(len(penguinRunes)))
	return penguinRunes[min(i, len(penguinRunes)-1)]
}

func (t *Terminal) drawBanner(a engine.ActorView) {
	v := a.Visual
	if v.Scale <= 0 {
		return
	}
	x0, y0, x1, y1 := t.cellRect(a.Bounds)
	cx, cy := t.CellAt(a.Bounds.Center())
	text := strings.Join(strings.Split(v.Text, ""), " ")

	if !t.color {
		t.centered(cx, cy, text, RgbBannerText, tcell.AttrBold|tcell.AttrReverse)
		return
	}
	t.buf.FillRect(x0, y0, x1, y1, RgbBanner, min(v.Scale, 1))
	t.centered(cx, cy, text, RgbBannerText, tcell.AttrBold)
}

// drawLines is the centered message box of the waiting and end screens
func (t *Terminal) drawLines(lines []string) {
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	cx, cy := t.CellAt(parameter.DisplayWidth/2, parameter.DisplayHeight/2)
	top := cy - len(lines)/2
	t.buf.FillRect(cx-width/2-2, top-1, cx+width/2+3, top+len(lines)+1, RgbOverlayBg, 0.85)
	for i, l := range lines {
		t.centered(cx, top+i, l, RgbText, tcell.AttrNone)
	}
}

func (t *Terminal) drawDebug(f *engine.Frame) {
	for ci, points := range f.IRPoints {
		for _, b := range points {
			if b == nil {
				continue
			}
			x, y := t.CellAt(b.X, b.Y)
			t.buf.Set(x, y, irRuneBase+rune(ci), RgbIRPoint, tcell.AttrBold)
		}
	}

	t.buf.Text(0, 0, fmt.Sprintf("fps %.1f", f.FPS), RgbDebugText, tcell.AttrNone)
	for i, m := range f.Metrics {
		if i+1 >= t.height {
			break
		}
		t.buf.Text(0, i+1, m.Key+" "+m.Value, RgbDebugText, tcell.AttrDim)
	}
}

func (t *Terminal) centered(cx, y int, s string, fg RGB, attrs tcell.AttrMask) {
	t.buf.Text(cx-len([]rune(s))/2, y, s, fg, attrs)
}
