// Package trkdecode decodes compressed fitness-tracker telemetry into ordered
// geographic tracks.
//
// A track file is a JSON document, usually wrapped in an `onTrackReady(...)`
// JSONP call, that maps track identifiers to per-channel segment lists. Each
// channel (alt, lat, lon, speed, time) is reconstructed from `freq` series and
// `base64/diff` bit-packed deltas, and the five channels are zipped into points.
//
// # Basic Usage
//
//	res, err := trkdecode.Decode(data)
//	if err != nil {
//	    return err
//	}
//	for _, t := range res.Tracks {
//	    fmt.Println(t.ID, len(t.Points))
//	}
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d)
//	}
//
// Reading a compressed file:
//
//	f, _ := os.Open("ride.trk.zst")
//	defer f.Close()
//	res, err := trkdecode.DecodeReader(f, trkdecode.AutoDetect, track.WithStrictLengths(true))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the track package.
// For a reusable configured decoder, access to the parsed document or the track
// index, use the track package directly. The gpx package renders results.
package trkdecode

import (
	"fmt"
	"io"

	"github.com/arloliu/trkdecode/compress"
	"github.com/arloliu/trkdecode/format"
	"github.com/arloliu/trkdecode/internal/hash"
	"github.com/arloliu/trkdecode/track"
)

// AutoDetect asks DecodeReader to sniff the input's compression container.
const AutoDetect format.CompressionType = 0

// Decode decodes an uncompressed track document.
//
// Parameters:
//   - data: Document bytes, with or without the onTrackReady envelope
//   - opts: Decoder options (strict lengths, point limit, empty track policy, logger)
//
// Returns:
//   - *track.Result: Ordered tracks and non-fatal diagnostics
//   - error: Invalid option, or a fatal decoding error wrapping one of the errs sentinels
func Decode(data []byte, opts ...track.DecoderOption) (*track.Result, error) {
	dec, err := track.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// DecodeReader reads a whole document from r, decompresses it and decodes it.
//
// Parameters:
//   - r: Source of the (possibly compressed) document
//   - compression: Container of the input, or AutoDetect to sniff zstd and gzip magic bytes
//   - opts: Decoder options
//
// Returns:
//   - *track.Result: Ordered tracks and non-fatal diagnostics
//   - error: Read, decompression or decoding failure
func DecodeReader(r io.Reader, compression format.CompressionType, opts ...track.DecoderOption) (*track.Result, error) {
	data, err := ReadInput(r, compression)
	if err != nil {
		return nil, err
	}

	return Decode(data, opts...)
}

// ReadInput reads all of r and removes its compression container.
func ReadInput(r io.Reader, compression format.CompressionType) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if compression == AutoDetect {
		data, _, err := compress.DecompressAuto(raw)

		return data, err
	}

	return compress.Decompress(raw, compression)
}

// TrackID returns the 64-bit hash identifying a track name, as stored in track.Track.Hash.
func TrackID(name string) uint64 {
	return hash.ID(name)
}
