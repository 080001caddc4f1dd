// Native raster surface for chart rendering, encoded as PNG.
// Drawing happens on a supersampled RGBA image that is downscaled on output.

package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ha1tch/qplot/pkg/chart"
)

// RasterOptions configures a Raster surface.
type RasterOptions struct {
	Width      int         // output width in pixels
	Height     int         // output height in pixels
	Scale      int         // supersampling factor
	FontSize   float64     // label size in points at 72 DPI
	Background color.Color // colour ClearRect paints
}

// MaxRasterPixels bounds the area of the supersampled image backing a
// Raster, 64 MiB of RGBA. Larger outputs are drawn with a lower Scale.
const MaxRasterPixels = 1 << 24

// DefaultRasterOptions returns sensible defaults for PNG output.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Width:      800,
		Height:     600,
		Scale:      4,
		FontSize:   12,
		Background: color.White,
	}
}

var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
	goRegularErr  error
)

func parseGoRegular() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// Raster is a Surface drawing into an in-memory image.
type Raster struct {
	opts  RasterOptions
	img   *image.RGBA // supersampled
	scale float64
	face  font.Face
	style chart.Style
	path  path
}

// NewRaster allocates a raster surface. The supersampling factor is
// lowered until the image fits in MaxRasterPixels; an output that does not
// fit even at Scale 1 is rejected with ErrInvalidSize.
func NewRaster(opts RasterOptions) (*Raster, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster size %dx%d: %w", opts.Width, opts.Height, ErrInvalidSize)
	}
	scale, ok := fitScale(opts.Width, opts.Height, opts.Scale)
	if !ok {
		return nil, fmt.Errorf("raster size %dx%d exceeds %d pixels: %w",
			opts.Width, opts.Height, MaxRasterPixels, ErrInvalidSize)
	}
	opts.Scale = scale
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	fnt, err := parseGoRegular()
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize * float64(opts.Scale),
		DPI:     72,
		Hinting: font.HintingNone, // supersampled instead
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}

	r := &Raster{
		opts:  opts,
		img:   image.NewRGBA(image.Rect(0, 0, opts.Width*opts.Scale, opts.Height*opts.Scale)),
		scale: float64(opts.Scale),
		face:  face,
		style: chart.DefaultStyle(),
	}
	r.ClearRect(0, 0, float64(opts.Width), float64(opts.Height))
	return r, nil
}

// Scale returns the supersampling factor in use.
func (r *Raster) Scale() int {
	return r.opts.Scale
}

// Size returns the output size in pixels.
func (r *Raster) Size() (float64, float64) {
	return float64(r.opts.Width), float64(r.opts.Height)
}

func (r *Raster) Style() chart.Style     { return r.style }
func (r *Raster) SetStyle(s chart.Style) { r.style = s }

// ClearRect paints the rectangle with the background colour.
func (r *Raster) ClearRect(x, y, w, h float64) {
	r.fillRect(x, y, w, h, r.opts.Background)
}

func (r *Raster) BeginPath()          { r.path.reset() }
func (r *Raster) MoveTo(x, y float64) { r.path.moveTo(x*r.scale, y*r.scale) }
func (r *Raster) LineTo(x, y float64) { r.path.lineTo(x*r.scale, y*r.scale) }

func (r *Raster) Arc(x, y, radius, start, end float64) {
	r.path.arc(x*r.scale, y*r.scale, radius*r.scale, start, end)
}

// Stroke draws every segment of the current path.
func (r *Raster) Stroke() {
	c := r.style.StrokeColor
	r.path.segments(func(a, b chart.Point) {
		r.drawLine(a.X, a.Y, b.X, b.Y, c)
	})
}

// Fill fills the current path, each subpath closed, under the nonzero
// winding rule with antialiased edges.
func (r *Raster) Fill() {
	if r.style.FillColor == nil {
		return
	}
	b := r.img.Bounds()
	polys, box := r.path.polygons(float64(b.Dx()+b.Dy()) * 2)
	clip := box.Intersect(b)
	if clip.Empty() {
		return
	}

	// The rasterizer covers only the clipped bounding box.
	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	for _, sp := range polys {
		z.MoveTo(float32(sp[0].X-ox), float32(sp[0].Y-oy))
		for _, p := range sp[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(r.img, clip, image.NewUniform(r.style.FillColor), image.Point{})
}

func (r *Raster) FillRect(x, y, w, h float64) {
	r.fillRect(x, y, w, h, r.style.FillColor)
}

func (r *Raster) StrokeRect(x, y, w, h float64) {
	c := r.style.StrokeColor
	x0, y0 := x*r.scale, y*r.scale
	x1, y1 := (x+w)*r.scale, (y+h)*r.scale
	r.drawLine(x0, y0, x1, y0, c)
	r.drawLine(x1, y0, x1, y1, c)
	r.drawLine(x1, y1, x0, y1, c)
	r.drawLine(x0, y1, x0, y0, c)
}

// FillText draws text in the fill colour, anchored per the current
// alignment and baseline.
func (r *Raster) FillText(text string, x, y float64) {
	sx, sy := x*r.scale, y*r.scale
	if math.IsNaN(sx) || math.IsNaN(sy) || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		return
	}

	width := font.MeasureString(r.face, text)
	dot := fixed.Point26_6{X: fixed.Int26_6(sx * 64), Y: fixed.Int26_6(sy * 64)}
	switch r.style.TextAlign {
	case chart.AlignCenter:
		dot.X -= width / 2
	case chart.AlignRight:
		dot.X -= width
	}

	m := r.face.Metrics()
	switch r.style.TextBaseline {
	case chart.BaselineTop:
		dot.Y += m.Ascent
	case chart.BaselineMiddle:
		dot.Y += (m.Ascent - m.Descent) / 2
	case chart.BaselineBottom:
		dot.Y -= m.Descent
	}

	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(r.style.FillColor),
		Face: r.face,
		Dot:  dot,
	}
	d.DrawString(text)
}

// Image returns the surface downscaled to the output size.
func (r *Raster) Image() *image.RGBA {
	if r.opts.Scale == 1 {
		return r.img
	}
	out := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), r.img, r.img.Bounds(), draw.Over, nil)
	return out
}

// EncodePNG writes the surface as a PNG image.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}

// fitScale returns the largest factor up to scale, and at least 1, whose
// supersampled image fits in MaxRasterPixels.
func fitScale(width, height, scale int) (int, bool) {
	area := int64(width) * int64(height)
	if area > MaxRasterPixels {
		return 0, false
	}
	if scale < 1 {
		scale = 1
	}
	for scale > 1 && area*int64(scale)*int64(scale) > MaxRasterPixels {
		scale--
	}
	return scale, true
}

// fillRect fills a rectangle given in output coordinates.
func (r *Raster) fillRect(x, y, w, h float64, c color.Color) {
	b := r.img.Bounds()
	x0, x1, ok := clampSpan(x*r.scale, (x+w)*r.scale, b.Dx())
	if !ok {
		return
	}
	y0, y1, ok := clampSpan(y*r.scale, (y+h)*r.scale, b.Dy())
	if !ok {
		return
	}
	draw.Draw(r.img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
}

// drawLine draws a line between two points in image coordinates with the
// current line width.
func (r *Raster) drawLine(x1, y1, x2, y2 float64, c color.Color) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Sqrt(dx*dx + dy*dy)
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return
	}

	halfThick := math.Max(r.style.LineWidth*r.scale, 1) / 2
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				r.img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}

	// Clip to a margin around the image so off-canvas geometry stays cheap.
	b := r.img.Bounds()
	limit := float64(b.Dx()+b.Dy()) * 2
	if math.Abs(x1) > limit || math.Abs(x2) > limit || math.Abs(y1) > limit || math.Abs(y2) > limit {
		return
	}

	perpX := -dy / dist
	perpY := dx / dist
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			r.img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}
