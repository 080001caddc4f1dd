package chart

import "image/color"

// TextAlign is the horizontal anchoring of text relative to its x coordinate.
type TextAlign int

const (
	AlignStart  TextAlign = iota // text begins at x (left-to-right)
	AlignLeft                    // same as AlignStart
	AlignCenter                  // text is centred on x
	AlignRight                   // text ends at x
)

// TextBaseline is the vertical anchoring of text relative to its y coordinate.
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota // y is the glyph baseline
	BaselineTop                            // y is the top of the em box
	BaselineMiddle                         // y is the middle of the em box
	BaselineBottom                         // y is the bottom of the em box
)

// Style is the mutable drawing state of a Surface.
type Style struct {
	StrokeColor  color.Color
	FillColor    color.Color
	LineWidth    float64
	TextAlign    TextAlign
	TextBaseline TextBaseline
}

// DefaultStyle is the state a fresh surface starts with.
func DefaultStyle() Style {
	return Style{
		StrokeColor:  color.Black,
		FillColor:    color.Black,
		LineWidth:    1,
		TextAlign:    AlignStart,
		TextBaseline: BaselineAlphabetic,
	}
}

// Surface is an immediate-mode 2D drawing context in pixel coordinates,
// y growing downward.
type Surface interface {
	// Size returns the drawable width and height in pixels.
	Size() (width, height float64)
	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc centred on (x, y), angles in radians.
	Arc(x, y, radius, start, end float64)
	Stroke()
	Fill()

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	FillText(text string, x, y float64)

	Style() Style
	SetStyle(Style)
}

// Scope captures the current style of s and returns a function restoring
// it. Renderers call it as `defer Scope(s)()` so that style changes never
// leak past them, whatever path they return on.
func Scope(s Surface) func() {
	saved := s.Style()
	return func() { s.SetStyle(saved) }
}

// withStyle applies fn to a copy of the current style and installs it.
func withStyle(s Surface, fn func(*Style)) {
	st := s.Style()
	fn(&st)
	s.SetStyle(st)
}

// line strokes a single segment as its own path.
func line(s Surface, x1, y1, x2, y2 float64) {
	s.BeginPath()
	s.MoveTo(x1, y1)
	s.LineTo(x2, y2)
	s.Stroke()
}
