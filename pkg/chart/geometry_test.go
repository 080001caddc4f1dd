package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name       string
		w, h       float64
		pad        Padding
		qubits     int
		wantDX     float64
		wantDY     float64
		wantMiddle float64
	}{
		{"default padding, one qubit", 800, 600, DefaultPadding(), 1, 350, 255, 295},
		{"single cell spans chart", 800, 600, DefaultPadding(), 0, 700, 255, 295},
		{"three qubits", 820, 440, Padding{20, 10, 20, 10}, 3, 100, 200, 220},
		{"no padding", 100, 100, Padding{}, 2, 25, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ComputeGeometry(tt.w, tt.h, tt.pad, tt.qubits)
			assert.InDelta(t, tt.wantDX, g.DX, 1e-9)
			assert.InDelta(t, tt.wantDY, g.DY, 1e-9)
			assert.InDelta(t, tt.wantMiddle, g.Middle, 1e-9)
			assert.Equal(t, tt.pad.Top, g.Top)
			assert.Equal(t, tt.pad.Left, g.Left)
			assert.Equal(t, tt.h-tt.pad.Bottom, g.Bottom)
			assert.Equal(t, tt.w-tt.pad.Right, g.Right)
			assert.Equal(t, 1<<tt.qubits, g.Cells())
			assert.InDelta(t, g.ChartWidth, float64(g.Cells())*g.DX, 1e-9)
			assert.False(t, g.Degenerate())
		})
	}
}

func TestGeometryCells(t *testing.T) {
	g := ComputeGeometry(800, 600, DefaultPadding(), 2)

	assert.InDelta(t, 50.0, g.CellLeft(0), 1e-9)
	assert.InDelta(t, 225.0, g.CellLeft(1), 1e-9)
	assert.InDelta(t, 137.5, g.CellCenter(0), 1e-9)
	assert.InDelta(t, 662.5, g.CellCenter(3), 1e-9)
	assert.InDelta(t, g.Right, g.CellLeft(g.Cells()), 1e-9)
}

func TestGeometryAxisMapping(t *testing.T) {
	g := ComputeGeometry(800, 600, DefaultPadding(), 1)

	assert.InDelta(t, g.Top, g.MagnitudeY(1), 1e-9)
	assert.InDelta(t, g.Middle, g.MagnitudeY(0), 1e-9)
	assert.InDelta(t, g.Top, g.PhaseY(180), 1e-9)
	assert.InDelta(t, g.Middle, g.PhaseY(0), 1e-9)
	assert.InDelta(t, g.Bottom, g.PhaseY(-180), 1e-9)
	assert.InDelta(t, (g.Top+g.Middle)/2, g.PhaseY(90), 1e-9)
}

func TestGeometryDegenerate(t *testing.T) {
	g := ComputeGeometry(80, 60, DefaultPadding(), 2)

	require.True(t, g.Degenerate())
	assert.Less(t, g.ChartWidth, 0.0)
	assert.Less(t, g.ChartHeight, 0.0)
	assert.False(t, math.IsNaN(g.DX))
	assert.False(t, math.IsNaN(g.DY))
}

func TestGeometryNegativeWidth(t *testing.T) {
	var g Geometry
	require.NotPanics(t, func() {
		g = ComputeGeometry(800, 600, DefaultPadding(), -1)
	})
	assert.Equal(t, 0, g.QubitWidth)
	assert.Equal(t, 1, g.Cells())
	assert.InDelta(t, g.ChartWidth, g.DX, 1e-9)

	require.NotPanics(t, func() {
		assert.Equal(t, 1, Geometry{QubitWidth: -4}.Cells())
	})
}

func TestPaddingApply(t *testing.T) {
	p := DefaultPadding().Apply(Left(10))
	assert.Equal(t, Padding{Top: 40, Right: 50, Bottom: 50, Left: 10}, p)

	p = p.Apply(Top(0), Bottom(5))
	assert.Equal(t, Padding{Top: 0, Right: 50, Bottom: 5, Left: 10}, p)

	assert.Equal(t, p, p.Apply())
}
