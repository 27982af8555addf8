package encoding

import (
	"slices"

	"github.com/arloliu/trkdecode/format"
)

// FreqSegment is an arithmetic series: Count samples starting at Base, spaced by Step.
type FreqSegment struct {
	Base  float64
	Step  float64
	Count int64
}

var _ Segment = FreqSegment{}

// Encoding returns format.EncodingFreq.
func (s FreqSegment) Encoding() format.EncodingType {
	return format.EncodingFreq
}

// DeclaredSize returns Count.
func (s FreqSegment) DeclaredSize() int64 {
	return s.Count
}

// MaxLen returns Count, or 0 when Count is negative.
func (s FreqSegment) MaxLen() int {
	if s.Count <= 0 {
		return 0
	}

	return int(s.Count)
}

// AppendTo appends Base, Base+Step, ... to dst.
//
// Samples are produced by repeated addition rather than Base+i*Step so the output
// matches the device's own accumulation bit for bit. A zero or negative Count
// appends nothing.
func (s FreqSegment) AppendTo(dst []float64) ([]float64, error) {
	n := s.MaxLen()
	dst = slices.Grow(dst, n)

	val := s.Base
	for range n {
		dst = append(dst, val)
		val += s.Step
	}

	return dst, nil
}
