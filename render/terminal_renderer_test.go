package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuzbolin/actor"
	"github.com/lixenwraith/tuzbolin/device"
	"github.com/lixenwraith/tuzbolin/engine"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/status"
	"github.com/lixenwraith/tuzbolin/vmath"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Expected simulation screen to init, got %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func centerBall() engine.ActorView {
	return engine.ActorView{
		Bounds: vmath.RectFromCenter(parameter.DisplayWidth/2, parameter.DisplayHeight/2, 20, 20),
		Visual: actor.Visual{Kind: actor.VisualBall, Scale: 1},
	}
}

func TestCellMapping(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)

	x, y := term.CellAt(parameter.DisplayWidth/2, parameter.DisplayHeight/2)
	if x != 64 || y != 24 {
		t.Errorf("Expected display center at (64, 24), got (%d, %d)", x, y)
	}
	x, y = term.CellAt(0, 0)
	if x != 0 || y != 0 {
		t.Errorf("Expected origin at (0, 0), got (%d, %d)", x, y)
	}

	// A wide screen letterboxes horizontally
	screen.SetSize(200, 48)
	term.Present(&engine.Frame{})
	x, _ = term.CellAt(0, 0)
	if x != 36 {
		t.Errorf("Expected left offset 36 on a wide screen, got %d", x)
	}
}

func TestPresentDrawsBallAndField(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)

	term.Present(&engine.Frame{State: engine.StatePlaying, Actors: []engine.ActorView{centerBall()}})

	r, _, style, _ := screen.GetContent(64, 24)
	if r != ballRune {
		t.Errorf("Expected ball rune at the center, got %q", r)
	}
	fg, _, _ := style.Decompose()
	if fg != RgbBall.Tcell() {
		t.Errorf("Expected ball color %v, got %v", RgbBall.Tcell(), fg)
	}

	// Field background around the ball
	_, _, style, _ = screen.GetContent(40, 24)
	_, bg, _ := style.Decompose()
	if bg != RgbField.Tcell() {
		t.Errorf("Expected field background %v, got %v", RgbField.Tcell(), bg)
	}

	// Left goal at the field edge
	gx, gy := term.CellAt(parameter.FieldLeft, parameter.FieldTop+parameter.FieldHeight/2)
	r, _, _, _ = screen.GetContent(gx, gy)
	if r != '▒' {
		t.Errorf("Expected goal rune at (%d, %d), got %q", gx, gy, r)
	}
}

func TestPresentDrawsBars(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)

	bar := engine.ActorView{
		Bounds: vmath.RectFromCenter(300, parameter.DisplayHeight/2, parameter.BarSpriteWidth, parameter.FieldHeight),
		Visual: actor.Visual{Kind: actor.VisualBar, Team: 1, Points: [][2]float64{{300, 200}, {300, 500}}},
	}
	term.Present(&engine.Frame{Actors: []engine.ActorView{bar}})

	for _, y := range []int{12, 31} {
		r, _, style, _ := screen.GetContent(37, y)
		if r != '█' {
			t.Errorf("Expected standing penguin at (37, %d), got %q", y, r)
		}
		fg, _, _ := style.Decompose()
		if fg != RgbTeam[1].Tcell() {
			t.Errorf("Expected team 1 color at (37, %d), got %v", y, fg)
		}
	}

	r, _, style, _ := screen.GetContent(37, 20)
	if r != rodRune {
		t.Errorf("Expected rod between penguins, got %q", r)
	}
	fg, _, _ := style.Decompose()
	if fg != teamRod(1).Tcell() {
		t.Errorf("Expected rod color %v, got %v", teamRod(1).Tcell(), fg)
	}
}

func TestPenguinRune(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '█'},
		{0.5, '▓'},
		{-0.5, '▓'},
		{1.0, '▒'},
		{math.Pi / 2, '▬'},
		{-math.Pi / 2, '▬'},
		{math.Pi, '█'},
		{2 * math.Pi, '█'},
	}
	for _, tt := range tests {
		if got := PenguinRune(tt.angle); got != tt.want {
			t.Errorf("PenguinRune(%v): Expected %q, got %q", tt.angle, tt.want, got)
		}
	}
}

func TestPresentTextAndLines(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)

	score := engine.ActorView{
		Bounds: vmath.RectFromCenter(parameter.DisplayWidth/2, 60, 70, 26),
		Visual: actor.Visual{Kind: actor.VisualText, Text: "3 : 1", Scale: 1},
	}
	hidden := engine.ActorView{
		Bounds: vmath.RectFromCenter(parameter.DisplayWidth/2, 700, 100, 26),
		Visual: actor.Visual{Kind: actor.VisualText, Text: "00:10:0", Hidden: true},
	}
	term.Present(&engine.Frame{
		Actors: []engine.ActorView{score, hidden},
		Lines:  []string{"Waiting for players"},
	})

	if row := rowText(screen, 3); !strings.Contains(row, "3 : 1") {
		t.Errorf("Expected score on row 3, got %q", row)
	}
	if row := rowText(screen, 43); strings.Contains(row, "00:10:0") {
		t.Errorf("Expected hidden timer not drawn, got %q", row)
	}
	if row := rowText(screen, 24); !strings.Contains(row, "Waiting for players") {
		t.Errorf("Expected overlay line on row 24, got %q", row)
	}
}

func TestBannerMonochrome(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, false)

	banner := engine.ActorView{
		Bounds: vmath.RectFromCenter(parameter.DisplayWidth/2, parameter.DisplayHeight/2, 200, 100),
		Visual: actor.Visual{Kind: actor.VisualBanner, Text: "GOAL", Scale: 1},
	}
	term.Present(&engine.Frame{Actors: []engine.ActorView{banner}})

	if row := rowText(screen, 24); !strings.Contains(row, "G O A L") {
		t.Fatalf("Expected spaced banner text, got %q", row)
	}
	x := strings.Index(rowText(screen, 24), "G O A L")
	_, _, style, _ := screen.GetContent(len([]rune(rowText(screen, 24)[:x])), 24)
	fg, _, attrs := style.Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Errorf("Expected reversed banner without color, got attrs %v", attrs)
	}
	if fg != tcell.ColorDefault {
		t.Errorf("Expected default foreground without color, got %v", fg)
	}
}

func TestBannerZeroScaleNotDrawn(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)

	banner := engine.ActorView{
		Bounds: vmath.RectFromCenter(parameter.DisplayWidth/2, parameter.DisplayHeight/2, 0, 0),
		Visual: actor.Visual{Kind: actor.VisualBanner, Text: "GOAL", Scale: 0},
	}
	term.Present(&engine.Frame{Actors: []engine.ActorView{banner}})

	if row := rowText(screen, 24); strings.Contains(row, "G O A L") {
		t.Errorf("Expected no banner at zero scale, got %q", row)
	}
}

func TestSpectatorFrames(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)

	for frame := range parameter.SpectatorFrames {
		view := engine.ActorView{
			Bounds: vmath.RectFromCenter(parameter.SpectatorX, parameter.SpectatorY, parameter.SpectatorSize, parameter.SpectatorSize),
			Visual: actor.Visual{Kind: actor.VisualSpectator, Frame: frame, Scale: 1},
		}
		term.Present(&engine.Frame{Actors: []engine.ActorView{view}})
		if row := rowText(screen, 2); !strings.Contains(row, spectatorFrames[frame]) {
			t.Errorf("Expected spectator frame %d %q on row 2, got %q", frame, spectatorFrames[frame], row)
		}
	}
}

func TestDebugOverlay(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)

	term.Present(&engine.Frame{
		Debug:    true,
		FPS:      25,
		IRPoints: [][]*device.Blob{{{X: 512, Y: 200}, nil}, {{X: 100, Y: 400}}},
		Metrics:  []status.Metric{{Key: status.KeyTicks, Value: "7"}},
	})

	if row := rowText(screen, 0); !strings.HasPrefix(row, "fps 25.0") {
		t.Errorf("Expected fps on row 0, got %q", row)
	}
	if row := rowText(screen, 1); !strings.HasPrefix(row, status.KeyTicks+" 7") {
		t.Errorf("Expected metric on row 1, got %q", row)
	}
	if r, _, _, _ := screen.GetContent(64, 12); r != '1' {
		t.Errorf("Expected first controller IR point at (64, 12), got %q", r)
	}
	if r, _, _, _ := screen.GetContent(12, 25); r != '2' {
		t.Errorf("Expected second controller IR point at (12, 25), got %q", r)
	}
}

func TestPresentFollowsResize(t *testing.T) {
	screen := newScreen(t, 128, 48)
	term := NewTerminal(screen, true)
	term.Present(&engine.Frame{Actors: []engine.ActorView{centerBall()}})

	screen.SetSize(64, 24)
	term.Present(&engine.Frame{Actors: []engine.ActorView{centerBall()}})

	if r, _, _, _ := screen.GetContent(32, 12); r != ballRune {
		t.Errorf("Expected ball at (32, 12) after resize, got %q", r)
	}
}

func TestTinyScreenDoesNotPanic(t *testing.T) {
	screen := newScreen(t, 1, 1)
	term := NewTerminal(screen, true)
	term.Present(&engine.Frame{Actors: []engine.ActorView{centerBall()}, Lines: []string{"x"}, Debug: true})
}

func TestRenderBufferBlend(t *testing.T) {
	buf := NewRenderBuffer(4, 2)
	buf.FillRect(-1, -1, 10, 10, RGB{200, 0, 0}, 1)
	if c := buf.Get(3, 1); c.Bg != (RGB{200, 0, 0}) {
		t.Errorf("Expected clipped fill to cover the buffer, got %v", c.Bg)
	}
	buf.SetBg(0, 0, RGB{0, 0, 200}, 0.5)
	if c := buf.Get(0, 0); c.Bg != (RGB{100, 0, 100}) {
		t.Errorf("Expected half blend {100 0 100}, got %v", c.Bg)
	}
	buf.Clear()
	if c := buf.Get(0, 0); c.Bg != RgbBackground || c.Rune != ' ' {
		t.Errorf("Expected cleared cell, got %+v", c)
	}
	if c := buf.Get(9, 9); c != (Cell{}) {
		t.Errorf("Expected zero cell out of bounds, got %+v", c)
	}
}
