package canvas_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ha1tch/qplot/pkg/canvas"
	"github.com/ha1tch/qplot/pkg/chart"
)

func TestRecorder(t *testing.T) {
	rec := canvas.NewRecorder(100, 50)
	w, h := rec.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)

	rec.BeginPath()
	rec.MoveTo(1, 2)
	rec.LineTo(3, 4)
	rec.Stroke()

	st := rec.Style()
	st.TextAlign = chart.AlignCenter
	rec.SetStyle(st)
	rec.FillText("hi", 5, 6)

	assert.Len(t, rec.Ops, 5)
	assert.Equal(t, 1, rec.Count(canvas.OpStroke))
	assert.Equal(t, []string{"hi"}, rec.Texts())
	assert.Equal(t, chart.AlignStart, rec.Ops[0].Style.TextAlign)
	assert.Equal(t, chart.AlignCenter, rec.Ops[4].Style.TextAlign)

	var buf bytes.Buffer
	_, err := rec.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, "beginPath()\nmoveTo(1.0, 2.0)\nlineTo(3.0, 4.0)\nstroke()\nfillText(\"hi\", 5.0, 6.0)\n", buf.String())

	rec.Reset()
	assert.Empty(t, rec.Ops)
}
