// Chart layout shared by every renderer of one plot call.

package chart

// Padding is the space, in pixels, between the surface edges and the chart.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// DefaultPadding leaves room for the axis labels on every side.
func DefaultPadding() Padding {
	return Padding{Top: 40, Right: 50, Bottom: 50, Left: 50}
}

// PaddingOption updates one side of a Padding.
type PaddingOption func(*Padding)

// Top sets the top padding.
func Top(v float64) PaddingOption { return func(p *Padding) { p.Top = v } }

// Right sets the right padding.
func Right(v float64) PaddingOption { return func(p *Padding) { p.Right = v } }

// Bottom sets the bottom padding.
func Bottom(v float64) PaddingOption { return func(p *Padding) { p.Bottom = v } }

// Left sets the left padding.
func Left(v float64) PaddingOption { return func(p *Padding) { p.Left = v } }

// Apply returns p with the updates applied; untouched sides keep their value.
func (p Padding) Apply(updates ...PaddingOption) Padding {
	for _, u := range updates {
		u(&p)
	}
	return p
}

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Geometry is the pixel layout of one chart.
type Geometry struct {
	CanvasWidth, CanvasHeight float64
	ChartWidth, ChartHeight   float64

	Top, Bottom float64
	Left, Right float64
	// Middle is the vertical centre of the chart: magnitude 0 and phase 0°.
	Middle float64

	// DX is the width of one basis-state cell, DY half the chart height.
	DX, DY float64

	QubitWidth int
}

// ComputeGeometry lays out a chart for 2^qubitWidth basis states on a
// canvas of the given size. A padding larger than the canvas gives a
// non-positive chart size; the result is degenerate but still usable.
// A negative width is laid out as width 0, a single cell.
func ComputeGeometry(canvasWidth, canvasHeight float64, p Padding, qubitWidth int) Geometry {
	if qubitWidth < 0 {
		qubitWidth = 0
	}
	chartWidth := canvasWidth - p.Left - p.Right
	chartHeight := canvasHeight - p.Top - p.Bottom
	cells := float64(int(1) << qubitWidth)

	return Geometry{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		ChartWidth:   chartWidth,
		ChartHeight:  chartHeight,
		Top:          p.Top,
		Bottom:       canvasHeight - p.Bottom,
		Left:         p.Left,
		Right:        canvasWidth - p.Right,
		Middle:       p.Top + chartHeight/2,
		DX:           chartWidth / cells,
		DY:           chartHeight / 2,
		QubitWidth:   qubitWidth,
	}
}

// Cells returns the number of basis-state cells.
func (g Geometry) Cells() int {
	if g.QubitWidth < 0 {
		return 1
	}
	return 1 << g.QubitWidth
}

// CellLeft returns the x coordinate of the left edge of cell k.
func (g Geometry) CellLeft(k int) float64 {
	return g.Left + float64(k)*g.DX
}

// CellCenter returns the x coordinate of the centre of cell k.
func (g Geometry) CellCenter(k int) float64 {
	return g.CellLeft(k) + g.DX/2
}

// MagnitudeY maps a magnitude (0 at Middle, 1 at Top) to a y coordinate.
func (g Geometry) MagnitudeY(m float64) float64 {
	return g.Top + g.DY - m*g.DY
}

// PhaseY maps a phase in degrees (180 at Top, -180 at Bottom) to a y coordinate.
func (g Geometry) PhaseY(deg float64) float64 {
	return g.Middle - deg/360*g.ChartHeight
}

// Degenerate reports whether the chart has no drawable area.
func (g Geometry) Degenerate() bool {
	return g.ChartWidth <= 0 || g.ChartHeight <= 0
}
