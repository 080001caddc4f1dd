// Package render draws a state vector onto a concrete output medium. It is
// shared by the qplot command and the HTTP server.
package render

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ha1tch/qplot/pkg/canvas"
	"github.com/ha1tch/qplot/pkg/chart"
	"github.com/ha1tch/qplot/pkg/statevector"
)

// Format is an output medium.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatOps Format = "ops"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options controls one render.
type Options struct {
	Width   int
	Height  int
	Padding []chart.PaddingOption // applied over the default padding
	Title   string                // SVG document title
	Log     zerolog.Logger
}

// DefaultOptions returns an 800x600 render with default padding.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Log: zerolog.Nop()}
}

// To draws sv in the given format and writes the result to w. Nothing is
// written when the vector is rejected.
func To(w io.Writer, f Format, sv statevector.StateVector, opts Options) error {
	switch f {
	case FormatPNG:
		ro := canvas.DefaultRasterOptions()
		ro.Width, ro.Height = opts.Width, opts.Height
		r, err := canvas.NewRaster(ro)
		if err != nil {
			return err
		}
		if err := plot(r, sv, opts); err != nil {
			return err
		}
		return r.EncodePNG(w)

	case FormatSVG:
		so := canvas.DefaultSVGOptions()
		so.Width, so.Height = opts.Width, opts.Height
		so.Title = opts.Title
		s, err := canvas.NewSVG(so)
		if err != nil {
			return err
		}
		if err := plot(s, sv, opts); err != nil {
			return err
		}
		_, err = s.WriteTo(w)
		return err

	case FormatOps:
		if opts.Width <= 0 || opts.Height <= 0 {
			return fmt.Errorf("recorder size %dx%d: %w", opts.Width, opts.Height, canvas.ErrInvalidSize)
		}
		rec := canvas.NewRecorder(float64(opts.Width), float64(opts.Height))
		if err := plot(rec, sv, opts); err != nil {
			return err
		}
		_, err := rec.WriteTo(w)
		return err

	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Plot draws sv onto an existing surface with the given options.
func Plot(s chart.Surface, sv statevector.StateVector, opts Options) (*chart.Frame, error) {
	p := chart.NewPlotter(s, chart.WithLogger(opts.Log))
	p.SetPadding(opts.Padding...)
	if err := p.Plot(sv); err != nil {
		return nil, err
	}
	return p.LastFrame(), nil
}

func plot(s chart.Surface, sv statevector.StateVector, opts Options) error {
	_, err := Plot(s, sv, opts)
	return err
}
