package encoding

import (
	"fmt"

	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/format"
)

// SegmentReport describes the output of one successfully decoded segment.
type SegmentReport struct {
	Index    int                 // Position of the segment within the channel
	Encoding format.EncodingType // Segment encoding
	Declared int64               // The segment's declared "size"
	Produced int                 // Number of samples actually appended
}

// ChannelDecoder decodes a channel's segment list into one sample series.
//
// The zero value decodes without limits or reporting.
type ChannelDecoder struct {
	// MaxValues bounds the total number of samples for the channel. Zero means no limit.
	// The bound is checked against each segment's MaxLen before decoding it.
	MaxValues int

	// OnSegment, when set, is called after each segment decodes.
	OnSegment func(SegmentReport)
}

// DecodeChannel decodes segments in order and concatenates their samples.
func DecodeChannel(segments []Segment) ([]float64, error) {
	return ChannelDecoder{}.Decode(segments)
}

// Decode decodes segments in order and concatenates their samples.
//
// Returns:
//   - []float64: All samples, in segment order
//   - error: The first segment error, wrapped with the segment index; no samples are returned
func (d ChannelDecoder) Decode(segments []Segment) ([]float64, error) {
	capHint := 0
	for _, seg := range segments {
		capHint += seg.MaxLen()
	}
	if d.MaxValues > 0 && capHint > d.MaxValues {
		capHint = d.MaxValues
	}

	values := make([]float64, 0, capHint)
	for i, seg := range segments {
		if d.MaxValues > 0 && len(values)+seg.MaxLen() > d.MaxValues {
			return nil, fmt.Errorf("segment %d (%s): %w: more than %d samples",
				i, seg.Encoding(), errs.ErrTooManyPoints, d.MaxValues)
		}

		before := len(values)

		var err error
		values, err = seg.AppendTo(values)
		if err != nil {
			return nil, fmt.Errorf("segment %d (%s): %w", i, seg.Encoding(), err)
		}

		if d.OnSegment != nil {
			d.OnSegment(SegmentReport{
				Index:    i,
				Encoding: seg.Encoding(),
				Declared: seg.DeclaredSize(),
				Produced: len(values) - before,
			})
		}
	}

	return values, nil
}
