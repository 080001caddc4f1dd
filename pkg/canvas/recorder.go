package canvas

import (
	"fmt"
	"io"
	"strings"

	"github.com/ha1tch/qplot/pkg/chart"
)

// OpKind names a drawing call.
type OpKind string

const (
	OpClearRect  OpKind = "clearRect"
	OpBeginPath  OpKind = "beginPath"
	OpMoveTo     OpKind = "moveTo"
	OpLineTo     OpKind = "lineTo"
	OpArc        OpKind = "arc"
	OpStroke     OpKind = "stroke"
	OpFill       OpKind = "fill"
	OpFillRect   OpKind = "fillRect"
	OpStrokeRect OpKind = "strokeRect"
	OpFillText   OpKind = "fillText"
)

// Op is one recorded drawing call with the style in effect when it ran.
type Op struct {
	Kind  OpKind
	Args  []float64
	Text  string
	Style chart.Style
}

func (op Op) String() string {
	args := make([]string, len(op.Args))
	for i, a := range op.Args {
		args[i] = fmt.Sprintf("%.1f", a)
	}
	if op.Kind == OpFillText {
		return fmt.Sprintf("%s(%q, %s)", op.Kind, op.Text, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s(%s)", op.Kind, strings.Join(args, ", "))
}

// Recorder is a Surface that draws nothing and logs every call. It backs
// the chart tests and the `info --ops` listing.
type Recorder struct {
	Width, Height float64
	Ops           []Op

	style chart.Style
}

// NewRecorder returns a recorder of the given logical size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height, style: chart.DefaultStyle()}
}

func (r *Recorder) record(kind OpKind, text string, args ...float64) {
	r.Ops = append(r.Ops, Op{Kind: kind, Args: args, Text: text, Style: r.style})
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Style() chart.Style     { return r.style }
func (r *Recorder) SetStyle(s chart.Style) { r.style = s }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(OpClearRect, "", x, y, w, h)
}

func (r *Recorder) BeginPath()          { r.record(OpBeginPath, "") }
func (r *Recorder) MoveTo(x, y float64) { r.record(OpMoveTo, "", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.record(OpLineTo, "", x, y) }

func (r *Recorder) Arc(x, y, radius, start, end float64) {
	r.record(OpArc, "", x, y, radius, start, end)
}

func (r *Recorder) Stroke() { r.record(OpStroke, "") }
func (r *Recorder) Fill()   { r.record(OpFill, "") }

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(OpFillRect, "", x, y, w, h)
}

func (r *Recorder) StrokeRect(x, y, w, h float64) {
	r.record(OpStrokeRect, "", x, y, w, h)
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.record(OpFillText, text, x, y)
}

// Reset drops all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Filter returns the recorded operations of the given kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Count returns how many operations of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	return len(r.Filter(kind))
}

// Texts returns the strings passed to FillText, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter(OpFillText) {
		out = append(out, op.Text)
	}
	return out
}

// WriteTo prints one operation per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, op := range r.Ops {
		n, err := fmt.Fprintln(w, op.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
