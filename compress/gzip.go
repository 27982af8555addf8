package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/trkdecode/errs"
)

// gzipWriterPool pools best-compression gzip writers; Reset rebinds them to a new destination.
var gzipWriterPool = sync.Pool{
	New: func() any {
		gw, err := gzip.NewWriterLevel(io.Discard, gzip.BestCompression)
		if err != nil {
			panic(fmt.Sprintf("failed to create gzip writer for pool: %v", err))
		}

		return gw
	},
}

// GzipCompressor provides gzip compression backed by klauspost/compress/gzip.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses the input data as a single gzip member.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	gw, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(gw)

	gw.Reset(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses gzip data, including multi-member streams.
//
// Output beyond the decompression limit fails with errs.ErrInputTooLarge.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer gr.Close()

	out, err := io.ReadAll(io.LimitReader(gr, int64(decompressLimit)+1))
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	if len(out) > decompressLimit {
		return nil, fmt.Errorf("%w: gzip stream expands beyond %d bytes", errs.ErrInputTooLarge, decompressLimit)
	}

	return out, nil
}
