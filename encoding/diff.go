package encoding

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/format"
	"github.com/arloliu/trkdecode/internal/bitpack"
	"github.com/arloliu/trkdecode/internal/pool"
)

// DiffSegment is a base64/diff segment: a start value followed by scaled signed deltas.
//
// Data holds the base64 text exactly as it appeared in the document. It is decoded
// lazily by AppendTo so that transport errors surface as errs.ErrBadTransport at
// decode time.
type DiffSegment struct {
	Base     float64
	Factor   float64
	Bitwidth int
	Data     string
	Size     int64
}

var _ Segment = DiffSegment{}

// Encoding returns format.EncodingBase64Diff.
func (s DiffSegment) Encoding() format.EncodingType {
	return format.EncodingBase64Diff
}

// DeclaredSize returns the document's "size" value.
func (s DiffSegment) DeclaredSize() int64 {
	return s.Size
}

// MaxLen returns 1 plus the number of integers Data decodes to, assuming it is valid base64.
func (s DiffSegment) MaxLen() int {
	return 1 + bitpack.Count(payloadLen(s.Data), s.Bitwidth)
}

// unpadded returns the base64 text with its trailing '=' padding removed.
// Devices emit payloads both with and without padding.
func unpadded(text string) string {
	return strings.TrimRight(text, "=")
}

// payloadLen is the decoded byte length of well-formed base64 text, padded or not.
func payloadLen(text string) int {
	return base64.RawStdEncoding.DecodedLen(len(unpadded(text)))
}

// AppendTo decodes Data, unpacks it at Bitwidth and appends the running sums to dst.
//
// The first appended sample is Base. Each unpacked value v is sign-extended
// (v - 2^w when v >= 2^(w-1)), multiplied by Factor and added to the previous sample.
func (s DiffSegment) AppendTo(dst []float64) ([]float64, error) {
	if s.Bitwidth != bitpack.Width8 && s.Bitwidth != bitpack.Width12 {
		return dst, fmt.Errorf("%w: %d", errs.ErrUnsupportedBitwidth, s.Bitwidth)
	}

	buf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(buf)

	text := unpadded(s.Data)
	raw := buf.Resize(base64.RawStdEncoding.DecodedLen(len(text)))
	n, err := base64.RawStdEncoding.Decode(raw, []byte(text))
	if err != nil {
		return dst, fmt.Errorf("%w: %v", errs.ErrBadTransport, err)
	}
	raw = raw[:n]

	u, err := bitpack.New(raw, s.Bitwidth)
	if err != nil {
		return dst, err
	}

	half := uint16(1) << (s.Bitwidth - 1)
	modulus := float64(uint32(1) << s.Bitwidth)

	dst = slices.Grow(dst, 1+bitpack.Count(n, s.Bitwidth))
	dst = append(dst, s.Base)

	last := s.Base
	for v := range u.All() {
		delta := float64(v)
		if v >= half {
			delta -= modulus
		}
		last = delta*s.Factor + last
		dst = append(dst, last)
	}

	return dst, nil
}
