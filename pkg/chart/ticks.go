package chart

import (
	"fmt"

	"github.com/ha1tch/qplot/pkg/statevector"
)

// DefaultPhaseTickDepth is the bisection depth of the phase axis: 15 ticks
// between the ±180° endpoints.
const DefaultPhaseTickDepth = 3

// Tick is one labelled mark on an axis.
type Tick struct {
	Pos   float64 // pixel coordinate along the axis
	Value float64
	Label string
}

// PhaseTicks places ticks by recursive bisection of the interval between
// topPos (value topValue) and bottomPos (value bottomValue). Each level
// marks the midpoint and then recurses into the upper and lower halves;
// levels 0 through depth are emitted, 2^(depth+1)-1 ticks in all, in
// pre-order. The endpoints themselves are not included.
func PhaseTicks(topPos, bottomPos, topValue, bottomValue float64, depth int) []Tick {
	var ticks []Tick
	bisect(&ticks, topPos, bottomPos, topValue, bottomValue, depth, 0)
	return ticks
}

func bisect(ticks *[]Tick, topPos, bottomPos, topValue, bottomValue float64, depth, step int) {
	if step > depth {
		return
	}
	pos := (topPos + bottomPos) / 2
	value := (topValue + bottomValue) / 2
	*ticks = append(*ticks, Tick{Pos: pos, Value: value, Label: degrees(value)})

	bisect(ticks, topPos, pos, topValue, value, depth, step+1)
	bisect(ticks, pos, bottomPos, value, bottomValue, depth, step+1)
}

func degrees(v float64) string {
	return fmt.Sprintf("%.1f°", v)
}

// MagnitudeTicks returns the eleven ticks of the magnitude axis, 1.0 at
// the chart top down to 0.0 at the middle line.
func MagnitudeTicks(g Geometry) []Tick {
	ticks := make([]Tick, 0, 11)
	for i := 0; i <= 10; i++ {
		v := float64(10-i) / 10
		ticks = append(ticks, Tick{
			Pos:   g.Top + float64(i)/10*g.DY,
			Value: v,
			Label: fmt.Sprintf("%.1f", v),
		})
	}
	return ticks
}

// BasisTicks returns one tick per basis state at the left edge of its cell.
// Labels are the zero-padded binary index.
func BasisTicks(g Geometry) []Tick {
	n := g.Cells()
	ticks := make([]Tick, 0, n)
	for k := 0; k < n; k++ {
		ticks = append(ticks, Tick{
			Pos:   g.CellLeft(k),
			Value: float64(k),
			Label: statevector.BinaryLabel(k, g.QubitWidth),
		})
	}
	return ticks
}
