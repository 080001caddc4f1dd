// Package canvas implements chart.Surface for concrete media: a raster
// image encoded as PNG, an SVG document, a tcell terminal screen, and a
// Recorder that logs calls instead of drawing.
package canvas

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ha1tch/qplot/pkg/chart"
)

// ErrInvalidSize is returned when a surface is created with a non-positive size.
var ErrInvalidSize = errors.New("invalid surface size")

// Compile-time checks.
var (
	_ chart.Surface = (*Raster)(nil)
	_ chart.Surface = (*SVG)(nil)
	_ chart.Surface = (*Terminal)(nil)
	_ chart.Surface = (*Recorder)(nil)
)

// hexColor formats c as #rrggbb, or "none" when fully transparent.
func hexColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// opacity returns the alpha of c in [0, 1].
func opacity(c color.Color) float64 {
	if c == nil {
		return 0
	}
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}
