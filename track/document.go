package track

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/arloliu/trkdecode/encoding"
	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/internal/collision"
)

// envelopePrefix is the JSONP callback the device service wraps track documents in.
const envelopePrefix = "onTrackReady("

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is the typed form of one track document, validated at the boundary.
type Document struct {
	// Tracks holds the document's tracks in document order.
	Tracks []TrackRecord
}

// TrackRecord is one track's declared size and its channels' segment lists.
type TrackRecord struct {
	ID   string
	Hash uint64 // xxHash64 of ID
	Size int64

	// Channels maps each channel present in "data" to its segments.
	// A channel absent from the document has no entry.
	Channels map[Field][]encoding.Segment

	// UnknownFields lists "data" keys that are not channels, sorted.
	UnknownFields []string
}

// UnwrapEnvelope strips the onTrackReady(...) JSONP wrapper from data.
//
// Surrounding whitespace, a UTF-8 byte order mark and a trailing semicolon are tolerated.
// Input that is already a bare JSON object is returned as is.
//
// Returns errs.ErrMalformedInput for anything else.
func UnwrapEnvelope(data []byte) ([]byte, error) {
	body := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))

	if bytes.HasPrefix(body, []byte(envelopePrefix)) {
		body = bytes.TrimSpace(body[len(envelopePrefix):])
		body = bytes.TrimSpace(bytes.TrimSuffix(body, []byte(";")))
		if !bytes.HasSuffix(body, []byte(")")) {
			return nil, fmt.Errorf("%w: unterminated %s envelope", errs.ErrMalformedInput, envelopePrefix)
		}

		return body[:len(body)-1], nil
	}

	if bytes.HasPrefix(body, []byte("{")) {
		return body, nil
	}

	return nil, fmt.Errorf("%w: expected %q prefix or a JSON object", errs.ErrMalformedInput, envelopePrefix)
}

// ParseDocument unwraps the envelope and parses the track document.
//
// The top level is streamed token by token so track order and duplicate identifiers
// are observed as written; each track body is then decoded into a generic tree and
// validated into typed records.
//
// Returns:
//   - *Document: Parsed tracks in document order
//   - error: errs.ErrMalformedInput for structural problems (also wrapping
//     errs.ErrDuplicateTrack for repeated identifiers), or a segment error from
//     encoding.ParseSegment wrapped with its track, field and segment index
func ParseDocument(data []byte) (*Document, error) {
	body, err := UnwrapEnvelope(data)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	tracker := collision.NewTracker()
	doc := &Document{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected track identifier, got %v", errs.ErrMalformedInput, tok)
		}

		idHash, err := tracker.Track(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: track %q: %v", errs.ErrMalformedInput, id, err)
		}

		rec, err := parseTrack(id, raw)
		if err != nil {
			return nil, err
		}
		rec.Hash = idHash
		doc.Tracks = append(doc.Tracks, rec)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", errs.ErrMalformedInput)
	}

	return doc, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", errs.ErrMalformedInput, want, tok)
	}

	return nil
}

func parseTrack(id string, raw any) (TrackRecord, error) {
	rec := TrackRecord{ID: id, Channels: make(map[Field][]encoding.Segment, len(Fields))}

	obj, ok := raw.(map[string]any)
	if !ok {
		return rec, fmt.Errorf("%w: track %q: expected object, got %T", errs.ErrMalformedInput, id, raw)
	}

	size, err := trackSize(obj)
	if err != nil {
		return rec, fmt.Errorf("%w: track %q: %v", errs.ErrMalformedInput, id, err)
	}
	rec.Size = size

	data, ok := obj["data"].(map[string]any)
	if !ok {
		return rec, fmt.Errorf("%w: track %q: \"data\" must be an object", errs.ErrMalformedInput, id)
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		field, known := ParseField(name)
		if !known {
			rec.UnknownFields = append(rec.UnknownFields, name)

			continue
		}

		segs, err := parseChannel(data[name])
		if err != nil {
			return rec, fmt.Errorf("track %q: field %s: %w", id, field, err)
		}
		rec.Channels[field] = segs
	}

	return rec, nil
}

func trackSize(obj map[string]any) (int64, error) {
	v, ok := obj["size"]
	if !ok {
		return 0, errors.New(`missing "size"`)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf(`"size" must be an integer, got %T`, v)
	}
	size, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf(`"size" must be an integer, got %s`, n)
	}
	if size < 0 {
		return 0, fmt.Errorf(`"size" must not be negative, got %d`, size)
	}

	return size, nil
}

func parseChannel(raw any) ([]encoding.Segment, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", errs.ErrMalformedInput, raw)
	}
	list, ok := obj["segments"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: \"segments\" must be an array", errs.ErrMalformedInput)
	}

	segs := make([]encoding.Segment, 0, len(list))
	for i, item := range list {
		segObj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("segment %d: %w: expected object, got %T", i, errs.ErrMalformedInput, item)
		}

		seg, err := encoding.ParseSegment(segObj)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segs = append(segs, seg)
	}

	return segs, nil
}
