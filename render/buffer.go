package render

import "github.com/gdamore/tcell/v2"

// Cell is one composited terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs tcell.AttrMask
}

// RenderBuffer is a compositor of cells flushed to a tcell screen once per frame
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: RgbText, Bg: RgbBackground}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y), a zero cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// ===== COMPOSITOR API =====

// Set writes a rune with its foreground, keeping the background
func (b *RenderBuffer) Set(x, y int, r rune, fg RGB, attrs tcell.AttrMask) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
}

// SetBg blends a background color over the cell; alpha 1 replaces it
func (b *RenderBuffer) SetBg(x, y int, bg RGB, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Bg = dst.Bg.Blend(bg, alpha)
}

// FillRect paints the background of the cells in [x0, x1) x [y0, y1)
func (b *RenderBuffer) FillRect(x0, y0, x1, y1 int, bg RGB, alpha float64) {
	for y := max(y0, 0); y < min(y1, b.height); y++ {
		for x := max(x0, 0); x < min(x1, b.width); x++ {
			b.SetBg(x, y, bg, alpha)
		}
	}
}

// Text writes s left to right from (x, y), clipped at the buffer edge
func (b *RenderBuffer) Text(x, y int, s string, fg RGB, attrs tcell.AttrMask) {
	for _, r := range s {
		b.Set(x, y, r, fg, attrs)
		x++
	}
}

// Flush copies the buffer to screen; without color only runes and attributes are kept
func (b *RenderBuffer) Flush(screen tcell.Screen, color bool) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			style := tcell.StyleDefault.Attributes(c.Attrs)
			if color {
				style = style.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
			}
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}
