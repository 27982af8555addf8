// Package errs defines the sentinel errors returned while decoding track documents.
//
// Errors are wrapped with additional context using fmt.Errorf("%w: ..."), so callers
// should match them with errors.Is rather than by equality.
package errs

import "errors"

var (
	// ErrMalformedInput indicates the document is not the expected object shape:
	// missing keys, wrong JSON types, or an unrecognized envelope.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingField indicates a required segment parameter is absent or has the wrong type.
	ErrMissingField = errors.New("missing field")

	// ErrUnsupportedEncoding indicates a segment encoding or value type that is not implemented.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrUnsupportedBitwidth indicates a packed-integer bitwidth other than 8 or 12.
	ErrUnsupportedBitwidth = errors.New("unsupported bitwidth")

	// ErrBadTransport indicates the textual transport encoding (base64) of a segment failed to decode.
	ErrBadTransport = errors.New("bad transport encoding")

	// ErrLengthMismatch indicates a decoded channel length differs from the declared track size.
	// It is only returned when strict length checking is enabled.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrDuplicateTrack indicates the same track identifier appears twice in one document.
	ErrDuplicateTrack = errors.New("duplicate track")

	// ErrTooManyPoints indicates a track declares more points than the decoder allows.
	ErrTooManyPoints = errors.New("too many points")

	// ErrInputTooLarge indicates a compressed input expands beyond the decompression limit.
	ErrInputTooLarge = errors.New("input too large")
)
