package canvas_test

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/qplot/pkg/canvas"
	"github.com/ha1tch/qplot/pkg/chart"
	"github.com/ha1tch/qplot/pkg/statevector"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func runeAt(screen tcell.Screen, col, row int) rune {
	r, _, _, _ := screen.GetContent(col, row)
	return r
}

func textAt(screen tcell.Screen, col, row, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = runeAt(screen, col+i, row)
	}
	return string(out)
}

func TestTerminalSize(t *testing.T) {
	screen := newSimScreen(t, 100, 38)
	term := canvas.NewTerminal(screen, 0, 0)

	w, h := term.Size()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 608.0, h)
}

func TestTerminalPlot(t *testing.T) {
	screen := newSimScreen(t, 100, 38)
	term := canvas.NewTerminal(screen, 8, 16)
	p := chart.NewPlotter(term)
	require.NoError(t, p.Plot(statevector.New(1)))
	term.Show()

	g := p.LastFrame().Geometry
	require.Equal(t, 299.0, g.Middle)

	// Bar 0 spans columns 10..45 and rows 2..18.
	r, _, style, _ := screen.GetContent(20, 10)
	assert.Equal(t, '█', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0x00, 0x77, 0xbe), fg)

	// The zero-height bar of basis 1 leaves the cell above the axis empty.
	assert.Equal(t, ' ', runeAt(screen, 60, 17))

	// Bar label centred over the bar at y = 20.
	assert.Equal(t, "1.000", textAt(screen, 26, 1, 5))

	// Horizontal axis between the bars, right axis between its ticks.
	assert.Equal(t, '─', runeAt(screen, 48, 18))
	assert.Equal(t, '│', runeAt(screen, 93, 25))
}

func TestTerminalClearRect(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	term := canvas.NewTerminal(screen, 8, 16)

	term.FillRect(0, 0, 80, 80)
	require.Equal(t, '█', runeAt(screen, 3, 3))

	term.ClearRect(0, 0, 80, 80)
	assert.Equal(t, ' ', runeAt(screen, 3, 3))
}

func TestTerminalSmallMarker(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	term := canvas.NewTerminal(screen, 8, 16)

	term.BeginPath()
	term.Arc(20, 33, 3, 0, 2*math.Pi)
	term.Fill()
	assert.Equal(t, '●', runeAt(screen, 2, 2))
}

func TestTerminalTinyScreen(t *testing.T) {
	screen := newSimScreen(t, 4, 2)
	term := canvas.NewTerminal(screen, 8, 16)

	assert.NotPanics(t, func() {
		require.NoError(t, chart.NewPlotter(term).Plot(statevector.New(4)))
	})
}
