package statevector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseQuadrants(t *testing.T) {
	tests := []struct {
		name   string
		re, im float64
		want   float64
	}{
		{"positive real", 1, 0, 0},
		{"positive imaginary", 0, 1, 90},
		{"negative real", -1, 0, 180},
		{"negative real, negative zero imaginary", -1, math.Copysign(0, -1), 180},
		{"negative imaginary", 0, -1, -90},
		{"zero amplitude", 0, 0, 0},
		{"diagonal", 1, 1, 45},
		{"third quadrant", -1, -1, -135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Phase(tt.re, tt.im), 1e-9)
		})
	}
}

func TestMagnitude(t *testing.T) {
	assert.InDelta(t, 5.0, Magnitude(3, 4), 1e-12)
	assert.InDelta(t, 0.0, Magnitude(0, 0), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, Magnitude(0.5, 0.5), 1e-12)
}

func TestStateVectorAccessors(t *testing.T) {
	h := 1 / math.Sqrt2
	sv := StateVector{QubitWidth: 1, Bases: []float64{h, 0, 0, -h}}

	require.NoError(t, sv.Validate())
	assert.Equal(t, 2, sv.Len())
	assert.Equal(t, complex(0, -h), sv.Amplitude(1))
	assert.InDelta(t, h, sv.Magnitude(0), 1e-12)
	assert.InDelta(t, -90.0, sv.Phase(1), 1e-9)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, sv.Probabilities(), 1e-12)
	assert.True(t, sv.IsNormalized(1e-9))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		sv   StateVector
		want error
	}{
		{"single basis", StateVector{QubitWidth: 0, Bases: []float64{1, 0}}, nil},
		{"two qubits", New(2), nil},
		{"negative width", StateVector{QubitWidth: -1, Bases: []float64{1, 0}}, ErrNegativeWidth},
		{"width too large", StateVector{QubitWidth: MaxQubitWidth + 1}, ErrWidthTooLarge},
		{"odd length", StateVector{QubitWidth: 1, Bases: []float64{1, 0, 0}}, ErrOddLength},
		{"short", StateVector{QubitWidth: 2, Bases: []float64{1, 0, 0, 0}}, ErrLengthMismatch},
		{"empty", StateVector{QubitWidth: 0}, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sv.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew(t *testing.T) {
	sv := New(3)
	require.Len(t, sv.Bases, 16)
	assert.Equal(t, 1.0, sv.Bases[0])
	assert.InDelta(t, 1.0, sv.NormSquared(), 1e-12)
}

func TestNegativeWidth(t *testing.T) {
	require.NotPanics(t, func() {
		sv := New(-3)
		assert.Equal(t, 0, sv.QubitWidth)
		assert.Equal(t, []float64{1, 0}, sv.Bases)
	})

	sv := StateVector{QubitWidth: -1}
	require.NotPanics(t, func() { sv.Len() })
	assert.Equal(t, 0, sv.Len())
	assert.ErrorIs(t, sv.Validate(), ErrNegativeWidth)
}

func TestBinaryLabel(t *testing.T) {
	tests := []struct {
		k, width int
		want     string
	}{
		{0, 0, "0"},
		{0, 1, "0"},
		{1, 1, "1"},
		{2, 3, "010"},
		{5, 3, "101"},
		{7, 3, "111"},
		{1, 4, "0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BinaryLabel(tt.k, tt.width))
	}
}
