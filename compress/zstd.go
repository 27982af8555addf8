package compress

// ZstdCompressor provides Zstandard compression.
//
// Zstd gives the best ratio of the built-in codecs on the highly repetitive
// JSON and XML text that track files and GPX documents consist of. The
// implementation is selected at build time: pure-Go klauspost/compress by
// default, or the cgo binding valyala/gozstd when built with `-tags gozstd`.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
