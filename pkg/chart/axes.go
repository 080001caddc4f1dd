package chart

import "image/color"

// Axis tick geometry, in pixels.
const (
	tickLength    = 5
	tickLabelGap  = 8
	basisLabelGap = 10
)

var colorAxis = color.RGBA{0, 0, 0, 255}

// Axes is what DrawAxes put on the surface.
type Axes struct {
	Basis     []Tick // horizontal axis, one per basis state
	Magnitude []Tick // left axis
	Phase     []Tick // right axis, endpoints first then the bisection ticks
}

// DrawAxes draws the shared horizontal axis at the chart middle, the
// magnitude axis on the left (top to middle) and the phase axis on the
// right (top to bottom), with their ticks and labels.
func DrawAxes(s Surface, g Geometry, phaseDepth int) Axes {
	defer Scope(s)()

	withStyle(s, func(st *Style) {
		st.StrokeColor = colorAxis
		st.FillColor = colorAxis
		st.LineWidth = 1
	})

	line(s, g.Left, g.Middle, g.Right, g.Middle)

	s.BeginPath()
	s.MoveTo(g.Left, g.Top)
	s.LineTo(g.Left, g.Middle)
	s.MoveTo(g.Right, g.Top)
	s.LineTo(g.Right, g.Bottom)
	s.Stroke()

	return Axes{
		Basis:     drawBasisTicks(s, g),
		Magnitude: drawMagnitudeTicks(s, g),
		Phase:     drawPhaseTicks(s, g, phaseDepth),
	}
}

func drawBasisTicks(s Surface, g Geometry) []Tick {
	setTextAnchor(s, AlignCenter, BaselineTop)
	ticks := BasisTicks(g)
	for _, t := range ticks {
		line(s, t.Pos, g.Middle-tickLength, t.Pos, g.Middle+tickLength)
		s.FillText(t.Label, t.Pos+g.DX/2, g.Middle+basisLabelGap)
	}
	return ticks
}

func drawMagnitudeTicks(s Surface, g Geometry) []Tick {
	setTextAnchor(s, AlignRight, BaselineMiddle)
	ticks := MagnitudeTicks(g)
	for _, t := range ticks {
		line(s, g.Left-tickLength, t.Pos, g.Left, t.Pos)
		s.FillText(t.Label, g.Left-tickLabelGap, t.Pos)
	}
	return ticks
}

func drawPhaseTicks(s Surface, g Geometry, depth int) []Tick {
	setTextAnchor(s, AlignLeft, BaselineMiddle)
	ticks := []Tick{
		{Pos: g.Top, Value: 180, Label: "180°"},
		{Pos: g.Bottom, Value: -180, Label: "-180°"},
	}
	ticks = append(ticks, PhaseTicks(g.Top, g.Bottom, 180, -180, depth)...)
	for _, t := range ticks {
		line(s, g.Right+tickLength, t.Pos, g.Right, t.Pos)
		s.FillText(t.Label, g.Right+tickLabelGap, t.Pos)
	}
	return ticks
}

func setTextAnchor(s Surface, align TextAlign, baseline TextBaseline) {
	withStyle(s, func(st *Style) {
		st.TextAlign = align
		st.TextBaseline = baseline
	})
}
