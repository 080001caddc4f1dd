package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ha1tch/qplot/pkg/simulation"
)

var csvHeader = []string{"index", "basis", "real", "imag", "magnitude", "phase", "probability"}

// writeTable prints a summary followed by one row per basis state.
func writeTable(w io.Writer, res simulation.Result) error {
	sv := res.Statevector
	probs := sv.Probabilities()

	lines := []string{
		fmt.Sprintf("Qubits:      %d", sv.QubitWidth),
		fmt.Sprintf("Bases:       %d", sv.Len()),
		fmt.Sprintf("Norm²:       %.6f", sv.NormSquared()),
		fmt.Sprintf("Normalized:  %t", sv.IsNormalized(1e-9)),
	}
	for _, name := range res.TimeNames() {
		lines = append(lines, fmt.Sprintf("Time %-7s %.3f ms", name+":", res.Times[name]))
	}
	lines = append(lines, "", fmt.Sprintf("%5s  %-*s  %10s  %10s  %9s  %8s  %11s",
		"Index", labelWidth(sv.QubitWidth), "Basis", "Real", "Imag", "Magnitude", "Phase", "Probability"))

	for k := 0; k < sv.Len(); k++ {
		amp := sv.Amplitude(k)
		lines = append(lines, fmt.Sprintf("%5d  %-*s  %10.6f  %10.6f  %9.3f  %8.2f  %11.6f",
			k, labelWidth(sv.QubitWidth), sv.Label(k), real(amp), imag(amp),
			sv.Magnitude(k), sv.Phase(k), probs[k]))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func labelWidth(qubits int) int {
	if qubits < len("Basis") {
		return len("Basis")
	}
	return qubits
}

// writeCSV writes one record per basis state with full precision.
func writeCSV(w io.Writer, res simulation.Result) error {
	sv := res.Statevector
	probs := sv.Probabilities()
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for k := 0; k < sv.Len(); k++ {
		amp := sv.Amplitude(k)
		record := []string{
			strconv.Itoa(k),
			sv.Label(k),
			formatFloat(real(amp)),
			formatFloat(imag(amp)),
			formatFloat(sv.Magnitude(k)),
			formatFloat(sv.Phase(k)),
			formatFloat(probs[k]),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
