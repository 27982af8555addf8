package track

// Assemble distributes decoded channel samples into expected Points.
//
// Every Point starts zeroed. For each of the five channels, sample i is written to
// Point i for i < min(expected, len(samples)); a short channel leaves the remaining
// Points' member at zero and a long channel's excess samples are dropped. Each channel
// whose length differs from expected, including a channel missing from the map,
// yields one LengthMismatch diagnostic. TrackID is left empty for the caller to fill.
//
// A negative expected count is treated as zero.
func Assemble(channels map[Field][]float64, expected int) ([]Point, []Diagnostic) {
	if expected < 0 {
		expected = 0
	}

	points := make([]Point, expected)

	var diags []Diagnostic
	for _, f := range Fields {
		samples := channels[f]
		if len(samples) != expected {
			diags = append(diags, Diagnostic{
				Kind:     LengthMismatch,
				Field:    f.String(),
				Actual:   len(samples),
				Expected: expected,
			})
		}

		n := min(expected, len(samples))
		for i := range n {
			*f.Slot(&points[i]) = samples[i]
		}
	}

	return points, diags
}
