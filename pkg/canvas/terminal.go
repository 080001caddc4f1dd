package canvas

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/qplot/pkg/chart"
)

// Runes used to approximate drawing on a character grid.
const (
	runeHLine = '─'
	runeVLine = '│'
	runeDot   = '·'
	runeBlock = '█'
	runePoint = '●'
)

// Terminal is a Surface backed by a tcell screen. Each cell stands for a
// CellWidth x CellHeight block of virtual pixels, so the chart geometry is
// computed exactly as for an image and then quantised to cells.
type Terminal struct {
	screen     tcell.Screen
	cellWidth  float64
	cellHeight float64
	style      chart.Style
	path       path
}

// NewTerminal wraps screen. Typical terminal cells are about twice as tall
// as they are wide; 8x16 is a reasonable cell size.
func NewTerminal(screen tcell.Screen, cellWidth, cellHeight float64) *Terminal {
	if cellWidth <= 0 {
		cellWidth = 8
	}
	if cellHeight <= 0 {
		cellHeight = 16
	}
	return &Terminal{
		screen:     screen,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		style:      chart.DefaultStyle(),
	}
}

// Size returns the screen size in virtual pixels.
func (t *Terminal) Size() (float64, float64) {
	cols, rows := t.screen.Size()
	return float64(cols) * t.cellWidth, float64(rows) * t.cellHeight
}

func (t *Terminal) Style() chart.Style     { return t.style }
func (t *Terminal) SetStyle(s chart.Style) { t.style = s }

// Show flushes drawing to the terminal.
func (t *Terminal) Show() { t.screen.Show() }

func (t *Terminal) ClearRect(x, y, w, h float64) {
	t.cells(x, y, w, h, func(col, row int) {
		t.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
	})
}

func (t *Terminal) BeginPath()          { t.path.reset() }
func (t *Terminal) MoveTo(x, y float64) { t.path.moveTo(x, y) }
func (t *Terminal) LineTo(x, y float64) { t.path.lineTo(x, y) }

func (t *Terminal) Arc(x, y, radius, start, end float64) {
	t.path.arc(x, y, radius, start, end)
}

// Stroke walks each segment cell by cell with a line rune matching its
// direction.
func (t *Terminal) Stroke() {
	st := t.cellStyle(t.style.StrokeColor)
	t.path.segments(func(a, b chart.Point) {
		c0, r0 := t.cell(a.X, a.Y)
		c1, r1 := t.cell(b.X, b.Y)
		r := runeDot
		switch {
		case r0 == r1:
			r = runeHLine
		case c0 == c1:
			r = runeVLine
		}
		t.walk(c0, r0, c1, r1, func(col, row int) {
			t.screen.SetContent(col, row, r, nil, st)
		})
	})
}

// Fill marks the cells whose centres lie inside the path. A shape smaller
// than a cell still gets one marker at its centroid.
func (t *Terminal) Fill() {
	st := t.cellStyle(t.style.FillColor)
	cols, rows := t.screen.Size()
	filled := false
	t.path.fillSpans(cols, rows, t.cellWidth, t.cellHeight, func(row, c0, c1 int) {
		for col := c0; col < c1; col++ {
			t.screen.SetContent(col, row, runeBlock, nil, st)
			filled = true
		}
	})
	if filled {
		return
	}
	for _, sp := range t.path.subpaths {
		if len(sp) == 0 {
			continue
		}
		var cx, cy float64
		for _, p := range sp {
			cx += p.X
			cy += p.Y
		}
		n := float64(len(sp))
		col, row := t.cell(cx/n, cy/n)
		if col >= 0 && row >= 0 && col < cols && row < rows {
			t.screen.SetContent(col, row, runePoint, nil, st)
		}
	}
}

func (t *Terminal) FillRect(x, y, w, h float64) {
	st := t.cellStyle(t.style.FillColor)
	t.cells(x, y, w, h, func(col, row int) {
		t.screen.SetContent(col, row, runeBlock, nil, st)
	})
}

// StrokeRect is a no-op: at cell resolution an outline would overwrite
// the filled body of the rectangle.
func (t *Terminal) StrokeRect(x, y, w, h float64) {}

// FillText writes text on the row containing y, aligned on x.
func (t *Terminal) FillText(text string, x, y float64) {
	runes := []rune(text)
	col, row := t.cell(x, y)
	switch t.style.TextAlign {
	case chart.AlignCenter:
		col -= len(runes) / 2
	case chart.AlignRight:
		col -= len(runes)
	}
	cols, rows := t.screen.Size()
	if row < 0 || row >= rows {
		return
	}
	st := t.cellStyle(t.style.FillColor)
	for i, r := range runes {
		if c := col + i; c >= 0 && c < cols {
			t.screen.SetContent(c, row, r, nil, st)
		}
	}
}

// cell maps a virtual pixel to the cell containing it.
func (t *Terminal) cell(x, y float64) (int, int) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return -1, -1
	}
	cols, rows := t.screen.Size()
	col := math.Max(math.Min(math.Floor(x/t.cellWidth), float64(cols)), -1)
	row := math.Max(math.Min(math.Floor(y/t.cellHeight), float64(rows)), -1)
	return int(col), int(row)
}

// cells visits the on-screen cells a rectangle covers.
func (t *Terminal) cells(x, y, w, h float64, fn func(col, row int)) {
	cols, rows := t.screen.Size()
	c0, c1, ok := clampSpan(x/t.cellWidth, (x+w)/t.cellWidth, cols)
	if !ok {
		return
	}
	r0, r1, ok := clampSpan(y/t.cellHeight, (y+h)/t.cellHeight, rows)
	if !ok {
		return
	}
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			fn(col, row)
		}
	}
}

// walk visits the cells on the line between two cells (Bresenham),
// skipping those off screen.
func (t *Terminal) walk(c0, r0, c1, r1 int, fn func(col, row int)) {
	cols, rows := t.screen.Size()
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr
	for {
		if c0 >= 0 && r0 >= 0 && c0 < cols && r0 < rows {
			fn(c0, r0)
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func (t *Terminal) cellStyle(c color.Color) tcell.Style {
	if c == nil {
		return tcell.StyleDefault
	}
	r, g, b, _ := c.RGBA()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
