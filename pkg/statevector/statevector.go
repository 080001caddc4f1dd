// Package statevector provides the state vector model consumed by the chart
// renderers: interleaved complex amplitudes over 2^n basis states.
package statevector

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxQubitWidth bounds the register width accepted by Validate.
// 2^20 cells is already far below one pixel per cell on any real surface.
const MaxQubitWidth = 20

var (
	ErrNegativeWidth  = errors.New("negative qubit width")
	ErrWidthTooLarge  = errors.New("qubit width too large")
	ErrOddLength      = errors.New("odd number of amplitude components")
	ErrLengthMismatch = errors.New("amplitude count does not match qubit width")
)

// StateVector is the simulation output: Bases holds (real, imaginary)
// pairs, entry 2k being the real part and 2k+1 the imaginary part of
// basis state k.
type StateVector struct {
	QubitWidth int       `json:"qubitWidth" msgpack:"qubitWidth"`
	Bases      []float64 `json:"bases" msgpack:"bases"`
}

// New returns the |0...0> state for a register of the given width. A
// negative width gives the single-basis register of width 0.
func New(qubitWidth int) StateVector {
	if qubitWidth < 0 {
		qubitWidth = 0
	}
	n := 1 << qubitWidth
	bases := make([]float64, 2*n)
	bases[0] = 1
	return StateVector{QubitWidth: qubitWidth, Bases: bases}
}

// Len returns the number of basis states described by QubitWidth, or 0
// when the width is negative.
func (sv StateVector) Len() int {
	if sv.QubitWidth < 0 {
		return 0
	}
	return 1 << sv.QubitWidth
}

// Validate reports whether the vector is well formed: a width in
// [0, MaxQubitWidth] and exactly two components per basis state.
func (sv StateVector) Validate() error {
	if sv.QubitWidth < 0 {
		return fmt.Errorf("width %d: %w", sv.QubitWidth, ErrNegativeWidth)
	}
	if sv.QubitWidth > MaxQubitWidth {
		return fmt.Errorf("width %d exceeds %d: %w", sv.QubitWidth, MaxQubitWidth, ErrWidthTooLarge)
	}
	if len(sv.Bases)%2 != 0 {
		return fmt.Errorf("%d components: %w", len(sv.Bases), ErrOddLength)
	}
	if want := 2 * sv.Len(); len(sv.Bases) != want {
		return fmt.Errorf("got %d components, want %d for width %d: %w",
			len(sv.Bases), want, sv.QubitWidth, ErrLengthMismatch)
	}
	return nil
}

// Amplitude returns the complex amplitude of basis state k.
func (sv StateVector) Amplitude(k int) complex128 {
	return complex(sv.Bases[2*k], sv.Bases[2*k+1])
}

// Magnitude returns sqrt(re² + im²) for basis state k.
func (sv StateVector) Magnitude(k int) float64 {
	return Magnitude(sv.Bases[2*k], sv.Bases[2*k+1])
}

// Phase returns the angle of basis state k in degrees, in (-180, 180].
func (sv StateVector) Phase(k int) float64 {
	return Phase(sv.Bases[2*k], sv.Bases[2*k+1])
}

// Magnitude returns the modulus of re + im·i.
func Magnitude(re, im float64) float64 {
	return math.Sqrt(re*re + im*im)
}

// Phase returns atan2(im, re) in degrees. The zero amplitude has phase 0.
// A negative-zero imaginary part would give -180; it is folded onto 180.
func Phase(re, im float64) float64 {
	deg := math.Atan2(im, re) * 180 / math.Pi
	if deg == -180 {
		return 180
	}
	return deg
}

// Probabilities returns |amplitude|² for each basis state.
func (sv StateVector) Probabilities() []float64 {
	n := len(sv.Bases) / 2
	probs := make([]float64, n)
	for k := 0; k < n; k++ {
		re, im := sv.Bases[2*k], sv.Bases[2*k+1]
		probs[k] = re*re + im*im
	}
	return probs
}

// NormSquared returns the sum of all probabilities; 1 for a normalized vector.
func (sv StateVector) NormSquared() float64 {
	return floats.Dot(sv.Bases, sv.Bases)
}

// IsNormalized reports whether NormSquared is within tol of 1.
func (sv StateVector) IsNormalized(tol float64) bool {
	return math.Abs(sv.NormSquared()-1) <= tol
}

// BinaryLabel returns k in binary, zero-padded to width bits.
func BinaryLabel(k, width int) string {
	return fmt.Sprintf("%0*b", width, k)
}

// Label returns the binary label of basis state k for this vector.
func (sv StateVector) Label(k int) string {
	return BinaryLabel(k, sv.QubitWidth)
}
