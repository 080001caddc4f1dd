package chart

import (
	"fmt"
	"image/color"

	"github.com/ha1tch/qplot/pkg/statevector"
)

// DefaultBarWidthRatio is the share of a cell a magnitude bar occupies.
const DefaultBarWidthRatio = 0.8

const barLabelOffset = 20

var (
	colorBarFill   = color.RGBA{0x00, 0x77, 0xbe, 0xff} // #0077be
	colorBarStroke = color.RGBA{0x00, 0x07, 0x2d, 0xff} // #00072d
)

// Bar is one drawn magnitude bar.
type Bar struct {
	Basis     int
	Magnitude float64
	Rect      Rect
	Label     string
}

// DrawAmplitudes draws one bar per basis state, growing upward from the
// middle line with height magnitude·DY, centred in its cell and labelled
// with the magnitude. Magnitudes above 1 are not clamped.
func DrawAmplitudes(s Surface, g Geometry, sv statevector.StateVector, widthRatio float64) []Bar {
	defer Scope(s)()

	withStyle(s, func(st *Style) {
		st.FillColor = colorBarFill
		st.StrokeColor = colorBarStroke
		st.LineWidth = 1
		st.TextAlign = AlignCenter
		st.TextBaseline = BaselineMiddle
	})

	barWidth := g.DX * widthRatio
	bars := make([]Bar, 0, len(sv.Bases)/2)
	for i := 0; i+1 < len(sv.Bases); i += 2 {
		k := i / 2
		m := statevector.Magnitude(sv.Bases[i], sv.Bases[i+1])
		r := Rect{
			X: g.CellCenter(k) - barWidth/2,
			Y: g.MagnitudeY(m),
			W: barWidth,
			H: m * g.DY,
		}
		s.FillRect(r.X, r.Y, r.W, r.H)
		s.StrokeRect(r.X, r.Y, r.W, r.H)

		label := fmt.Sprintf("%.3f", m)
		s.FillText(label, r.X+r.W/2, r.Y-barLabelOffset)

		bars = append(bars, Bar{Basis: k, Magnitude: m, Rect: r, Label: label})
	}
	return bars
}
