package compress

import (
	"fmt"

	"github.com/arloliu/trkdecode/format"
)

// MaxDecompressedSize bounds how far a single compressed track file may expand.
// A document at the default point limit stays well below it; anything larger
// fails with errs.ErrInputTooLarge instead of exhausting memory.
const MaxDecompressedSize = 256 << 20

// decompressLimit is the limit enforced by the gzip, S2, LZ4 and cgo zstd codecs.
// The pure-Go zstd decoders are built with MaxDecompressedSize directly.
var decompressLimit = MaxDecompressedSize

// Compressor compresses a whole track file or GPX document in one call.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller (except for the no-op codec)
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
//
// Example:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(payload)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: all built-in decompressors are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or truncated
	//   - Returns error if data was compressed with a different algorithm
	//   - Returns errs.ErrInputTooLarge if the output would exceed MaxDecompressedSize
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Gzip)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Decompress restores data compressed with the given algorithm.
//
// Parameters:
//   - data: Compressed bytes
//   - compressionType: Algorithm the data was compressed with
//
// Returns:
//   - []byte: Decompressed bytes
//   - error: Unknown compression type or corrupted input
func Decompress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s input: %w", compressionType, err)
	}

	return out, nil
}

// DecompressAuto sniffs the container magic of data and decompresses it.
//
// Only self-describing containers (zstd frames and gzip members) are recognized.
// Anything else is returned unchanged with format.CompressionNone, since raw
// S2 and LZ4 blocks carry no signature.
func DecompressAuto(data []byte) ([]byte, format.CompressionType, error) {
	detected := format.DetectCompression(data)
	out, err := Decompress(data, detected)
	if err != nil {
		return nil, detected, err
	}

	return out, detected, nil
}

// Compress compresses data with the given algorithm.
func Compress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}
