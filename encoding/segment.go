package encoding

import "github.com/arloliu/trkdecode/format"

// Segment is one contiguous run of a channel's samples under a single encoding rule.
type Segment interface {
	// Encoding returns the wire encoding of the segment.
	Encoding() format.EncodingType

	// DeclaredSize returns the "size" value the document declared for this segment.
	//
	// For freq segments it is the exact number of samples produced. For base64/diff
	// segments it is informational; the sample count follows from the payload length.
	DeclaredSize() int64

	// MaxLen returns an upper bound on the number of samples AppendTo will append,
	// computable without decoding the payload.
	MaxLen() int

	// AppendTo decodes the segment and appends its samples to dst.
	//
	// On error dst is returned unchanged in length.
	AppendTo(dst []float64) ([]float64, error)
}
