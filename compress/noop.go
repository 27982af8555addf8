package compress

// NoOpCompressor passes data through unchanged. It backs format.CompressionNone,
// the setting for plain .trk and .gpx files.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is. The result shares memory with data.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is. The result shares memory with data.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
