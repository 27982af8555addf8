package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/trkdecode/errs"
)

// S2Compressor provides S2 block compression.
//
// S2 blocks carry no magic bytes, so S2 input must be selected explicitly;
// DecompressAuto never picks it. Their length prefix is checked against the
// decompression limit before any output is allocated.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data as one S2 block with the better-ratio matcher.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decompresses one S2 block.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if size > decompressLimit {
		return nil, fmt.Errorf("%w: s2 block declares %d bytes, limit %d", errs.ErrInputTooLarge, size, decompressLimit)
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
