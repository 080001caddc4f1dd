package chart_test

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/qplot/pkg/canvas"
	"github.com/ha1tch/qplot/pkg/chart"
	"github.com/ha1tch/qplot/pkg/statevector"
)

// axisTextCount is the number of axis labels besides the basis labels:
// 11 magnitude ticks, 2 phase endpoints and 15 bisection ticks.
const axisTextCount = 11 + 2 + 15

func plotRecorded(t *testing.T, sv statevector.StateVector, opts ...chart.Option) (*canvas.Recorder, *chart.Frame) {
	t.Helper()
	rec := canvas.NewRecorder(800, 600)
	p := chart.NewPlotter(rec, opts...)
	require.NoError(t, p.Plot(sv))
	require.NotNil(t, p.LastFrame())
	return rec, p.LastFrame()
}

func TestPlotBasisZeroScenario(t *testing.T) {
	sv := statevector.StateVector{QubitWidth: 1, Bases: []float64{1, 0, 0, 0}}
	rec, frame := plotRecorded(t, sv)

	require.Len(t, frame.Bars, 2)
	for _, bar := range frame.Bars {
		assert.Equal(t, frame.Geometry.MagnitudeY(bar.Magnitude), bar.Rect.Y)
		assert.Equal(t, frame.Geometry.Middle, bar.Rect.Y+bar.Rect.H)
	}
	assert.Equal(t, "1.000", frame.Bars[0].Label)
	assert.Equal(t, "0.000", frame.Bars[1].Label)
	assert.Equal(t, chart.Rect{X: 85, Y: 40, W: 280, H: 255}, frame.Bars[0].Rect)
	assert.Equal(t, 0.0, frame.Bars[1].Rect.H)
	assert.Equal(t, frame.Geometry.Middle, frame.Bars[1].Rect.Y)

	require.Len(t, frame.Points, 2)
	for i, pt := range frame.Points {
		assert.Equal(t, 0.0, pt.Phase)
		assert.Equal(t, "0.00", pt.Label)
		assert.Equal(t, frame.Geometry.Middle, pt.Center.Y)
		assert.Equal(t, frame.Geometry.CellCenter(i), pt.Center.X)
	}

	texts := rec.Texts()
	require.Len(t, texts, 2+axisTextCount+2+2)
	assert.Equal(t, []string{"0", "1"}, texts[:2])
	assert.Equal(t, []string{"1.000", "0.000", "0.00", "0.00"}, texts[len(texts)-4:])
}

func TestPlotSingleBasis(t *testing.T) {
	sv := statevector.StateVector{QubitWidth: 0, Bases: []float64{0, -1}}
	rec, frame := plotRecorded(t, sv)

	g := frame.Geometry
	require.Len(t, frame.Bars, 1)
	require.Len(t, frame.Points, 1)
	assert.InDelta(t, g.Left+g.ChartWidth/2, frame.Points[0].Center.X, 1e-9)
	assert.InDelta(t, g.Left+g.ChartWidth/2, frame.Bars[0].Rect.X+frame.Bars[0].Rect.W/2, 1e-9)
	assert.InDelta(t, g.ChartWidth*chart.DefaultBarWidthRatio, frame.Bars[0].Rect.W, 1e-9)
	assert.Equal(t, "-90.00", frame.Points[0].Label)
	assert.InDelta(t, g.Middle+g.ChartHeight/4, frame.Points[0].Center.Y, 1e-9)

	assert.Equal(t, 1, rec.Count(canvas.OpFillRect))
	assert.Equal(t, 1, rec.Count(canvas.OpArc))
	require.Len(t, frame.Axes.Basis, 1)
	assert.Equal(t, "0", frame.Axes.Basis[0].Label)
}

func TestPlotCountsScaleWithWidth(t *testing.T) {
	for n := 0; n <= 5; n++ {
		sv := statevector.New(n)
		rec, frame := plotRecorded(t, sv)
		cells := 1 << n

		assert.Equal(t, cells, rec.Count(canvas.OpFillRect), "bars for n=%d", n)
		assert.Equal(t, cells, rec.Count(canvas.OpStrokeRect), "bar outlines for n=%d", n)
		assert.Equal(t, cells, rec.Count(canvas.OpArc), "points for n=%d", n)
		require.Len(t, frame.Axes.Basis, cells)

		seen := make(map[string]bool)
		for k, tk := range frame.Axes.Basis {
			assert.Equal(t, statevector.BinaryLabel(k, n), tk.Label)
			assert.Len(t, tk.Label, max(n, 1))
			assert.False(t, seen[tk.Label], "duplicate label %s", tk.Label)
			seen[tk.Label] = true
		}
	}
}

func TestPlotPhaseAxis(t *testing.T) {
	_, frame := plotRecorded(t, statevector.New(2))

	phase := frame.Axes.Phase
	require.Len(t, phase, 2+15)
	assert.Equal(t, "180°", phase[0].Label)
	assert.Equal(t, "-180°", phase[1].Label)
	assert.Equal(t, "0.0°", phase[2].Label)
	assert.InDelta(t, frame.Geometry.Middle, phase[2].Pos, 1e-9)

	_, frame = plotRecorded(t, statevector.New(2), chart.WithPhaseTickDepth(1))
	assert.Len(t, frame.Axes.Phase, 2+3)
}

func TestPlotLayering(t *testing.T) {
	rec, _ := plotRecorded(t, statevector.New(2))

	firstOf := func(kind canvas.OpKind) int {
		for i, op := range rec.Ops {
			if op.Kind == kind {
				return i
			}
		}
		return -1
	}
	lastOf := func(kind canvas.OpKind) int {
		for i := len(rec.Ops) - 1; i >= 0; i-- {
			if rec.Ops[i].Kind == kind {
				return i
			}
		}
		return -1
	}

	assert.Equal(t, 0, firstOf(canvas.OpClearRect))
	assert.Equal(t, []float64{0, 0, 800, 600}, rec.Ops[0].Args)
	assert.Less(t, lastOf(canvas.OpStroke), firstOf(canvas.OpFillRect), "axes before bars")
	assert.Less(t, lastOf(canvas.OpStrokeRect), firstOf(canvas.OpArc), "bars before points")
}

func TestPlotStyles(t *testing.T) {
	rec, _ := plotRecorded(t, statevector.New(1))

	for _, op := range rec.Filter(canvas.OpStroke) {
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, op.Style.StrokeColor)
	}
	for _, op := range rec.Filter(canvas.OpFillRect) {
		assert.Equal(t, color.RGBA{0x00, 0x77, 0xbe, 0xff}, op.Style.FillColor)
	}
	for _, op := range rec.Filter(canvas.OpStrokeRect) {
		assert.Equal(t, color.RGBA{0x00, 0x07, 0x2d, 0xff}, op.Style.StrokeColor)
		assert.Equal(t, 1.0, op.Style.LineWidth)
	}
	for _, op := range rec.Filter(canvas.OpFill) {
		assert.Equal(t, color.RGBA{0x32, 0xcd, 0x32, 0xff}, op.Style.FillColor)
	}
	for _, op := range rec.Filter(canvas.OpArc) {
		assert.Equal(t, float64(chart.DefaultPointRadius), op.Args[2])
		assert.InDelta(t, 2*math.Pi, op.Args[4]-op.Args[3], 1e-12)
	}

	// Every renderer restores what it changed.
	assert.Equal(t, chart.DefaultStyle(), rec.Style())
}

func TestScopeRestoresStyle(t *testing.T) {
	rec := canvas.NewRecorder(10, 10)
	func() {
		defer chart.Scope(rec)()
		st := rec.Style()
		st.FillColor = color.White
		st.TextAlign = chart.AlignRight
		rec.SetStyle(st)
	}()
	assert.Equal(t, chart.DefaultStyle(), rec.Style())
}

func TestSetPaddingMergesFields(t *testing.T) {
	rec := canvas.NewRecorder(800, 600)
	p := chart.NewPlotter(rec)
	sv := statevector.New(1)

	require.NoError(t, p.Plot(sv))
	before := p.LastFrame().Geometry

	p.SetPadding(chart.Left(10))
	assert.Equal(t, chart.Padding{Top: 40, Right: 50, Bottom: 50, Left: 10}, p.Padding())

	require.NoError(t, p.Plot(sv))
	after := p.LastFrame().Geometry
	assert.Equal(t, 10.0, after.Left)
	assert.Equal(t, before.Top, after.Top)
	assert.Equal(t, before.Right, after.Right)
	assert.Equal(t, before.Bottom, after.Bottom)
}

func TestPlotRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		sv   statevector.StateVector
		want error
	}{
		{"odd length", statevector.StateVector{QubitWidth: 1, Bases: []float64{1, 0, 0}}, statevector.ErrOddLength},
		{"negative width", statevector.StateVector{QubitWidth: -1}, statevector.ErrNegativeWidth},
		{"length mismatch", statevector.StateVector{QubitWidth: 3, Bases: []float64{1, 0}}, statevector.ErrLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := canvas.NewRecorder(800, 600)
			p := chart.NewPlotter(rec)
			err := p.Plot(tt.sv)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, rec.Ops, "surface must be untouched")
			assert.Nil(t, p.LastFrame())
		})
	}
}

func TestPlotDegenerateGeometry(t *testing.T) {
	var logs bytes.Buffer
	rec := canvas.NewRecorder(60, 40)
	p := chart.NewPlotter(rec, chart.WithLogger(zerolog.New(&logs)))

	require.NotPanics(t, func() {
		require.NoError(t, p.Plot(statevector.New(2)))
	})
	assert.True(t, p.LastFrame().Geometry.Degenerate())
	assert.Contains(t, logs.String(), "padding leaves no chart area")
}

func TestPlotUnnormalizedNotClamped(t *testing.T) {
	sv := statevector.StateVector{QubitWidth: 0, Bases: []float64{3, 4}}
	_, frame := plotRecorded(t, sv)

	bar := frame.Bars[0]
	assert.Equal(t, "5.000", bar.Label)
	assert.InDelta(t, 5*frame.Geometry.DY, bar.Rect.H, 1e-9)
	assert.Less(t, bar.Rect.Y, 0.0, "bar extends past the top of the surface")
}

func TestPlotOverwritesPrevious(t *testing.T) {
	rec := canvas.NewRecorder(800, 600)
	p := chart.NewPlotter(rec)

	require.NoError(t, p.Plot(statevector.New(3)))
	rec.Reset()
	require.NoError(t, p.Plot(statevector.New(1)))

	assert.Equal(t, canvas.OpClearRect, rec.Ops[0].Kind)
	assert.Len(t, p.LastFrame().Bars, 2)
	assert.Equal(t, 2, rec.Count(canvas.OpFillRect))
}
