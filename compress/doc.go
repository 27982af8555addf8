// Package compress provides the whole-file codecs used to read compressed track
// files and to write compressed GPX output.
//
// Track exports are often shipped gzip- or zstd-compressed. Decompression is a
// transport concern that happens before the decoder sees the JSON envelope, and
// compression is applied to the finished GPX document.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): pass-through
//   - Zstd (format.CompressionZstd): pure-Go klauspost/compress by default, valyala/gozstd with `-tags gozstd`
//   - S2 (format.CompressionS2): klauspost/compress/s2 block format
//   - LZ4 (format.CompressionLZ4): pierrec/lz4 block format
//   - Gzip (format.CompressionGzip): klauspost/compress/gzip
//
// # Usage
//
//	raw, kind, err := compress.DecompressAuto(fileBytes)
//	if err != nil {
//	    return err
//	}
//
//	out, err := compress.Compress(gpxBytes, format.CompressionZstd)
//
// DecompressAuto recognizes only containers with a magic number (zstd and gzip).
// S2 and LZ4 inputs must be named explicitly through Decompress.
//
// # Thread Safety
//
// All codecs are stateless values. Pooled encoders and decoders are taken from
// sync.Pool per call, so a single Codec may be shared across goroutines.
package compress
