// Path accumulation shared by the raster and terminal surfaces, and the
// cell-resolution scan conversion the terminal fills with.

package canvas

import (
	"image"
	"math"
	"sort"

	"github.com/ha1tch/qplot/pkg/chart"
)

// path is the current path of a surface: a list of polylines.
type path struct {
	subpaths [][]chart.Point
}

func (p *path) reset() {
	p.subpaths = p.subpaths[:0]
}

func (p *path) moveTo(x, y float64) {
	p.subpaths = append(p.subpaths, []chart.Point{{X: x, Y: y}})
}

func (p *path) lineTo(x, y float64) {
	if len(p.subpaths) == 0 {
		p.moveTo(x, y)
		return
	}
	last := len(p.subpaths) - 1
	p.subpaths[last] = append(p.subpaths[last], chart.Point{X: x, Y: y})
}

// arc flattens a circular arc into line segments. Like a 2D canvas, the
// arc is joined to the current point by a straight line.
func (p *path) arc(cx, cy, r, start, end float64) {
	sweep := end - start
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	steps := int(math.Ceil(math.Abs(sweep) * math.Max(r, 4) / 2))
	if steps < 16 {
		steps = 16
	}
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		p.lineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

// segments calls fn for every segment of every subpath.
func (p *path) segments(fn func(a, b chart.Point)) {
	for _, sp := range p.subpaths {
		for i := 1; i < len(sp); i++ {
			fn(sp[i-1], sp[i])
		}
	}
}

// polygons returns the subpaths that can be filled: at least three points,
// all finite and within limit of the origin. box is their integer bounding
// box.
func (p *path) polygons(limit float64) (polys [][]chart.Point, box image.Rectangle) {
	for _, sp := range p.subpaths {
		if len(sp) < 3 {
			continue
		}
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		ok := true
		for _, pt := range sp {
			if !(math.Abs(pt.X) <= limit && math.Abs(pt.Y) <= limit) {
				ok = false
				break
			}
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
		if !ok {
			continue
		}
		polys = append(polys, sp)
		box = box.Union(image.Rect(
			int(math.Floor(minX)), int(math.Floor(minY)),
			int(math.Ceil(maxX)), int(math.Ceil(maxY)),
		))
	}
	return polys, box
}

// fillSpans scan-converts the path, with every subpath implicitly closed,
// under the even-odd rule. For each row y in [0, rows) it reports the
// filled column spans [x0, x1) clipped to [0, cols). Rows and columns are
// in units of cellW x cellH and sampled at cell centres.
func (p *path) fillSpans(cols, rows int, cellW, cellH float64, span func(y, x0, x1 int)) {
	type edge struct{ a, b chart.Point }
	var edges []edge
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, sp := range p.subpaths {
		n := len(sp)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := sp[i], sp[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			edges = append(edges, edge{a, b})
			minY = math.Min(minY, math.Min(a.Y, b.Y))
			maxY = math.Max(maxY, math.Max(a.Y, b.Y))
		}
	}
	if len(edges) == 0 {
		return
	}

	y0, y1, ok := clampSpan(minY/cellH, maxY/cellH, rows)
	if !ok {
		return
	}
	xs := make([]float64, 0, 8)
	for row := y0; row < y1; row++ {
		sy := (float64(row) + 0.5) * cellH
		xs = xs[:0]
		for _, e := range edges {
			lo, hi := e.a, e.b
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			if sy < lo.Y || sy >= hi.Y {
				continue
			}
			t := (sy - lo.Y) / (hi.Y - lo.Y)
			xs = append(xs, lo.X+t*(hi.X-lo.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			lo := math.Ceil(xs[i]/cellW - 0.5)
			hi := math.Ceil(xs[i+1]/cellW - 0.5)
			if x0, x1, ok := clampSpan(lo, hi, cols); ok {
				span(row, x0, x1)
			}
		}
	}
}

// clampSpan converts the real interval [a, b] to the integer cells
// [lo, hi) it covers within [0, limit). NaN bounds and zero-length
// intervals give an empty span.
func clampSpan(a, b float64, limit int) (lo, hi int, ok bool) {
	if math.IsNaN(a) || math.IsNaN(b) || a == b || limit <= 0 {
		return 0, 0, false
	}
	if a > b {
		a, b = b, a
	}
	a = math.Max(math.Floor(a), 0)
	b = math.Min(math.Ceil(b), float64(limit))
	if a >= b {
		return 0, 0, false
	}
	return int(a), int(b), true
}
