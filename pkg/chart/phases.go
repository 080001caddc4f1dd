package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ha1tch/qplot/pkg/statevector"
)

// DefaultPointRadius is the radius of a phase marker in pixels.
const DefaultPointRadius = 3

const pointLabelOffset = 10

var colorPhase = color.RGBA{0x32, 0xcd, 0x32, 0xff} // limegreen

// PhasePoint is one drawn phase marker.
type PhasePoint struct {
	Basis  int
	Phase  float64 // degrees
	Center Point
	Label  string
}

// DrawPhases draws one filled circle per basis state at the cell centre,
// at the height of its phase on the right axis, labelled with the phase.
func DrawPhases(s Surface, g Geometry, sv statevector.StateVector, radius float64) []PhasePoint {
	defer Scope(s)()

	withStyle(s, func(st *Style) {
		st.FillColor = colorPhase
		st.TextAlign = AlignCenter
		st.TextBaseline = BaselineMiddle
	})

	points := make([]PhasePoint, 0, len(sv.Bases)/2)
	for i := 0; i+1 < len(sv.Bases); i += 2 {
		k := i / 2
		phase := statevector.Phase(sv.Bases[i], sv.Bases[i+1])
		c := Point{X: g.CellCenter(k), Y: g.PhaseY(phase)}

		s.BeginPath()
		s.Arc(c.X, c.Y, radius, 0, 2*math.Pi)
		s.Fill()

		label := fmt.Sprintf("%.2f", phase)
		s.FillText(label, c.X, c.Y-pointLabelOffset)

		points = append(points, PhasePoint{Basis: k, Phase: phase, Center: c, Label: label})
	}
	return points
}
