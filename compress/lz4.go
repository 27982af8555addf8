package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/trkdecode/errs"
)

// lz4InitialRatio is the first output-buffer guess for a block. Track JSON and
// GPX XML are repetitive text that typically expands 5-10x.
const lz4InitialRatio = 8

// lz4CompressorPool pools high-compression block compressors. Output files are
// written once, so the slower HC matcher is worth its better ratio.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.CompressorHC{Level: lz4.Level9}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// An LZ4 block carries no magic bytes or length header, so LZ4 input must be
// named explicitly and its output size is discovered by retrying.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data as one LZ4 block using the HC matcher.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	hc, _ := lz4CompressorPool.Get().(*lz4.CompressorHC)
	defer lz4CompressorPool.Put(hc)

	n, err := hc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decompresses one LZ4 block.
//
// The output buffer starts at lz4InitialRatio times the input and doubles on
// lz4.ErrInvalidSourceShortBuffer, up to the decompression limit.
//
// Parameters:
//   - data: Compressed data to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: errs.ErrInputTooLarge past the limit, or the block decoding error
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := min(len(data)*lz4InitialRatio, decompressLimit)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if bufSize >= decompressLimit {
			return nil, fmt.Errorf("%w: lz4 block expands beyond %d bytes", errs.ErrInputTooLarge, decompressLimit)
		}
		bufSize = min(bufSize*2, decompressLimit)
	}
}
