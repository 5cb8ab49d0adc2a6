// Package projection turns raw trait scores into biplot coordinates.
//
// Positions are relative to the batch: Project scales each axis by the
// largest absolute value found in the whole record set, so adding or removing
// a person moves everybody else. Callers that need stable positions across
// runs must project the same population.
package projection

import "math"

// DefaultMaxValue is the half-width of the plotted square.
const DefaultMaxValue = 25

// Scale compresses series into (-maxValue, maxValue) with
// maxValue * tanh(v / max|series|). An all-zero series maps to all zeros.
// The input slice is not modified.
func Scale(series []float64, maxValue float64) []float64 {
	out := make([]float64, len(series))

	var peak float64
	for _, v := range series {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return out
	}

	for i, v := range series {
		out[i] = maxValue * math.Tanh(v/peak)
	}
	return out
}
