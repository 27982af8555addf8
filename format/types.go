// Package format defines the wire-level enumerations shared by the decoder packages.
package format

import (
	"bytes"
	"fmt"
	"strings"
)

type (
	EncodingType    uint8
	ValueType       uint8
	CompressionType uint8
)

const (
	EncodingFreq       EncodingType = 0x1 // EncodingFreq represents an arithmetic series of base plus constant step.
	EncodingBase64Diff EncodingType = 0x2 // EncodingBase64Diff represents base64-transported, bit-packed scaled deltas.

	TypeDouble ValueType = 0x1 // TypeDouble represents 64-bit floating point samples.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip compression.
)

// Wire names as they appear in the "encoding" and "type" keys of a segment.
const (
	freqName       = "freq"
	base64DiffName = "base64/diff"
	doubleName     = "double"
)

func (e EncodingType) String() string {
	switch e {
	case EncodingFreq:
		return freqName
	case EncodingBase64Diff:
		return base64DiffName
	default:
		return "Unknown"
	}
}

// ParseEncoding maps a segment "encoding" value to its EncodingType.
// The match is exact; no aliases are accepted.
func ParseEncoding(name string) (EncodingType, bool) {
	switch name {
	case freqName:
		return EncodingFreq, true
	case base64DiffName:
		return EncodingBase64Diff, true
	default:
		return 0, false
	}
}

func (v ValueType) String() string {
	if v == TypeDouble {
		return doubleName
	}

	return "Unknown"
}

// ParseValueType maps a segment "type" value to its ValueType.
func ParseValueType(name string) (ValueType, bool) {
	if name == doubleName {
		return TypeDouble, true
	}

	return 0, false
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a case-insensitive compression name such as "zstd" or "none".
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	gzipMagic = []byte{0x1F, 0x8B}
)

// DetectCompression sniffs the leading magic bytes of data.
//
// Only self-describing formats can be detected: Zstandard frames and gzip members.
// S2 and LZ4 block payloads carry no magic and are reported as CompressionNone,
// so callers must name those explicitly.
func DetectCompression(data []byte) CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}
