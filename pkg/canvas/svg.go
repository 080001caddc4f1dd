package canvas

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/ha1tch/qplot/pkg/chart"
)

// SVGOptions controls SVG output.
type SVGOptions struct {
	Width      int         // canvas width in pixels
	Height     int         // canvas height in pixels
	FontSize   int         // label font size in pixels
	FontFamily string      // CSS font family for labels
	Title      string      // document title (optional)
	Background color.Color // colour ClearRect paints
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      800,
		Height:     600,
		FontSize:   12,
		FontFamily: "sans-serif",
		Background: color.White,
	}
}

// SVG is a Surface that builds an SVG document without external dependencies.
type SVG struct {
	opts  SVGOptions
	body  strings.Builder
	style chart.Style
	d     strings.Builder // current path data
}

// NewSVG creates an empty SVG surface.
func NewSVG(opts SVGOptions) (*SVG, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("svg size %dx%d: %w", opts.Width, opts.Height, ErrInvalidSize)
	}
	if opts.FontSize == 0 {
		opts.FontSize = 12
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "sans-serif"
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	return &SVG{opts: opts, style: chart.DefaultStyle()}, nil
}

func (s *SVG) Size() (float64, float64) {
	return float64(s.opts.Width), float64(s.opts.Height)
}

func (s *SVG) Style() chart.Style      { return s.style }
func (s *SVG) SetStyle(st chart.Style) { s.style = st }

// ClearRect covering the whole canvas discards everything drawn so far;
// a partial clear paints the background over the area.
func (s *SVG) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && x+w >= float64(s.opts.Width) && y+h >= float64(s.opts.Height) {
		s.body.Reset()
	}
	s.body.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>
`, num(x), num(y), num(w), num(h), hexColor(s.opts.Background)))
}

func (s *SVG) BeginPath() { s.d.Reset() }

func (s *SVG) MoveTo(x, y float64) {
	s.d.WriteString(fmt.Sprintf("M%s,%s ", num(x), num(y)))
}

func (s *SVG) LineTo(x, y float64) {
	if s.d.Len() == 0 {
		s.MoveTo(x, y)
		return
	}
	s.d.WriteString(fmt.Sprintf("L%s,%s ", num(x), num(y)))
}

// Arc appends a circular arc. A full turn is written as two half arcs,
// since a single SVG arc cannot start and end on the same point.
func (s *SVG) Arc(cx, cy, r, start, end float64) {
	sx, sy := cx+r*math.Cos(start), cy+r*math.Sin(start)
	s.LineTo(sx, sy)

	sweep := end - start
	if math.Abs(sweep) >= 2*math.Pi {
		mx, my := cx+r*math.Cos(start+math.Pi), cy+r*math.Sin(start+math.Pi)
		s.d.WriteString(fmt.Sprintf("A%s,%s 0 1 1 %s,%s ", num(r), num(r), num(mx), num(my)))
		s.d.WriteString(fmt.Sprintf("A%s,%s 0 1 1 %s,%s Z ", num(r), num(r), num(sx), num(sy)))
		return
	}

	ex, ey := cx+r*math.Cos(end), cy+r*math.Sin(end)
	large, dir := 0, 1
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	if sweep < 0 {
		dir = 0
	}
	s.d.WriteString(fmt.Sprintf("A%s,%s 0 %d %d %s,%s ", num(r), num(r), large, dir, num(ex), num(ey)))
}

func (s *SVG) Stroke() {
	if s.d.Len() == 0 {
		return
	}
	s.body.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="%s"/>
`, strings.TrimSpace(s.d.String()), hexColor(s.style.StrokeColor), num(s.style.LineWidth)))
}

func (s *SVG) Fill() {
	if s.d.Len() == 0 {
		return
	}
	s.body.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" fill-rule="evenodd"%s/>
`, strings.TrimSpace(s.d.String()), hexColor(s.style.FillColor), fillOpacity(s.style.FillColor)))
}

func (s *SVG) FillRect(x, y, w, h float64) {
	x, y, w, h = normRect(x, y, w, h)
	s.body.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>
`, num(x), num(y), num(w), num(h), hexColor(s.style.FillColor), fillOpacity(s.style.FillColor)))
}

func (s *SVG) StrokeRect(x, y, w, h float64) {
	x, y, w, h = normRect(x, y, w, h)
	s.body.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"/>
`, num(x), num(y), num(w), num(h), hexColor(s.style.StrokeColor), num(s.style.LineWidth)))
}

func (s *SVG) FillText(text string, x, y float64) {
	s.body.WriteString(fmt.Sprintf(`<text x="%s" y="%s" fill="%s" text-anchor="%s" dominant-baseline="%s">%s</text>
`, num(x), num(y), hexColor(s.style.FillColor), textAnchor(s.style.TextAlign),
		dominantBaseline(s.style.TextBaseline), html.EscapeString(text)))
}

// String returns the complete SVG document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="%s" font-size="%d">
`, s.opts.Width, s.opts.Height, s.opts.Width, s.opts.Height,
		html.EscapeString(s.opts.FontFamily), s.opts.FontSize))
	if s.opts.Title != "" {
		sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(s.opts.Title)))
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the SVG document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// num formats a coordinate with one decimal; non-finite values become 0
// so that a degenerate chart still yields a valid document.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return fmt.Sprintf("%.1f", v)
}

// normRect flips negative extents; SVG rejects negative width and height.
func normRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}

func fillOpacity(c color.Color) string {
	if a := opacity(c); a > 0 && a < 1 {
		return fmt.Sprintf(` fill-opacity="%.2f"`, a)
	}
	return ""
}

func textAnchor(a chart.TextAlign) string {
	switch a {
	case chart.AlignCenter:
		return "middle"
	case chart.AlignRight:
		return "end"
	default:
		return "start"
	}
}

func dominantBaseline(b chart.TextBaseline) string {
	switch b {
	case chart.BaselineTop:
		return "text-before-edge"
	case chart.BaselineMiddle:
		return "middle"
	case chart.BaselineBottom:
		return "text-after-edge"
	default:
		return "alphabetic"
	}
}
