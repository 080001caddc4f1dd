// Package chart renders a state vector as a magnitude bar chart and a
// phase scatter plot sharing one horizontal axis of basis states.
//
// A Plotter computes the layout once per call and then draws, in order,
// the axes, the magnitude bars and the phase points, so that data is
// layered over the axis lines. Drawing goes through the Surface
// interface; see package canvas for PNG, SVG and terminal surfaces.
package chart

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ha1tch/qplot/pkg/statevector"
)

// Options configures a Plotter.
type Options struct {
	Padding        Padding
	BarWidthRatio  float64 // share of a cell covered by a bar
	PointRadius    float64 // phase marker radius in pixels
	PhaseTickDepth int     // bisection depth of the phase axis
	Log            zerolog.Logger
}

// DefaultOptions returns the standard chart settings.
func DefaultOptions() Options {
	return Options{
		Padding:        DefaultPadding(),
		BarWidthRatio:  DefaultBarWidthRatio,
		PointRadius:    DefaultPointRadius,
		PhaseTickDepth: DefaultPhaseTickDepth,
		Log:            zerolog.Nop(),
	}
}

// Option modifies Options.
type Option func(*Options)

// WithPadding replaces the initial padding.
func WithPadding(p Padding) Option { return func(o *Options) { o.Padding = p } }

// WithBarWidthRatio sets the bar width as a fraction of the cell width.
func WithBarWidthRatio(r float64) Option { return func(o *Options) { o.BarWidthRatio = r } }

// WithPointRadius sets the phase marker radius.
func WithPointRadius(r float64) Option { return func(o *Options) { o.PointRadius = r } }

// WithPhaseTickDepth sets the recursion depth of the phase ticks.
func WithPhaseTickDepth(d int) Option { return func(o *Options) { o.PhaseTickDepth = d } }

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.Log = l } }

// Frame records what one Plot call drew.
type Frame struct {
	Geometry Geometry
	Axes     Axes
	Bars     []Bar
	Points   []PhasePoint
}

// Plotter draws state vectors onto a surface it has exclusive use of.
type Plotter struct {
	surface Surface
	opts    Options
	last    *Frame
}

// NewPlotter creates a plotter drawing on s.
func NewPlotter(s Surface, opts ...Option) *Plotter {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Plotter{surface: s, opts: o}
}

// SetPadding merges the given updates into the current padding. Sides
// without an update are left unchanged.
func (p *Plotter) SetPadding(updates ...PaddingOption) {
	p.opts.Padding = p.opts.Padding.Apply(updates...)
}

// Padding returns the current padding.
func (p *Plotter) Padding() Padding {
	return p.opts.Padding
}

// LastFrame returns the frame drawn by the most recent successful Plot,
// or nil before the first one.
func (p *Plotter) LastFrame() *Frame {
	return p.last
}

// Plot clears the surface and draws sv. A malformed vector is rejected
// before the surface is touched, leaving the previous drawing intact.
func (p *Plotter) Plot(sv statevector.StateVector) error {
	if err := sv.Validate(); err != nil {
		return fmt.Errorf("plot: %w", err)
	}

	w, h := p.surface.Size()
	g := ComputeGeometry(w, h, p.opts.Padding, sv.QubitWidth)
	log := p.opts.Log
	if g.Degenerate() {
		log.Warn().
			Float64("chart_width", g.ChartWidth).
			Float64("chart_height", g.ChartHeight).
			Msg("padding leaves no chart area")
	}
	log.Debug().
		Int("qubits", sv.QubitWidth).
		Float64("dx", g.DX).
		Float64("dy", g.DY).
		Msg("plotting state vector")

	p.surface.ClearRect(0, 0, w, h)

	frame := &Frame{Geometry: g}
	frame.Axes = DrawAxes(p.surface, g, p.opts.PhaseTickDepth)
	frame.Bars = DrawAmplitudes(p.surface, g, sv, p.opts.BarWidthRatio)
	frame.Points = DrawPhases(p.surface, g, sv, p.opts.PointRadius)
	p.last = frame
	return nil
}
