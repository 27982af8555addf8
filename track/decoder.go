package track

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/trkdecode/encoding"
	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/internal/options"
)

// Track is one assembled track.
type Track struct {
	ID     string
	Hash   uint64 // xxHash64 of ID
	Points []Point
}

// sortKey is floor(first point's time), or 0 for an empty track.
func (t Track) sortKey() int64 {
	if len(t.Points) == 0 {
		return 0
	}

	return int64(math.Floor(t.Points[0].Time))
}

// Result is the output of decoding one document.
type Result struct {
	// Tracks are ordered by floor of the first point's time, ascending, ties broken by ID.
	Tracks []Track

	// Diagnostics are the non-fatal findings in document order: all findings for
	// one track, ending with its EmptyTrack entry if it was skipped, precede
	// those of the next track in the document.
	Diagnostics []Diagnostic
}

// Segments returns the ordered point sequences without their identifiers.
func (r *Result) Segments() [][]Point {
	out := make([][]Point, len(r.Tracks))
	for i := range r.Tracks {
		out[i] = r.Tracks[i].Points
	}

	return out
}

// Set returns the tracks indexed by identifier.
func (r *Result) Set() *Set {
	return NewSet(r.Tracks)
}

// Decoder turns track documents into ordered point sequences.
//
// A Decoder holds only configuration and may be used for any number of documents.
// Decoding is synchronous and CPU-bound.
type Decoder struct {
	cfg *DecoderConfig
}

// NewDecoder creates a Decoder with the given options.
//
// Returns an error if any option value is invalid.
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Decode parses and decodes a document, with or without its onTrackReady envelope.
//
// Any fatal error aborts the whole document; no partial result is returned.
func (d *Decoder) Decode(data []byte) (*Result, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	return d.DecodeDocument(doc)
}

// DecodeDocument decodes every track of an already parsed document and orders them.
func (d *Decoder) DecodeDocument(doc *Document) (*Result, error) {
	res := &Result{Tracks: make([]Track, 0, len(doc.Tracks))}

	for i := range doc.Tracks {
		tr, diags, err := d.decodeTrack(&doc.Tracks[i])
		if err != nil {
			return nil, err
		}
		res.Diagnostics = append(res.Diagnostics, diags...)

		if len(tr.Points) == 0 && d.cfg.emptyPolicy == EmptyTrackSkip {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: EmptyTrack, TrackID: tr.ID})

			continue
		}
		res.Tracks = append(res.Tracks, tr)
	}

	sortTracks(res.Tracks)

	for _, diag := range res.Diagnostics {
		d.cfg.logf("%s", diag)
	}

	return res, nil
}

func (d *Decoder) decodeTrack(rec *TrackRecord) (Track, []Diagnostic, error) {
	tr := Track{ID: rec.ID, Hash: rec.Hash}

	if rec.Size > int64(d.cfg.maxPoints) {
		return tr, nil, fmt.Errorf("track %q: %w: size %d exceeds %d",
			rec.ID, errs.ErrTooManyPoints, rec.Size, d.cfg.maxPoints)
	}

	var diags []Diagnostic
	for _, name := range rec.UnknownFields {
		diags = append(diags, Diagnostic{Kind: UnknownField, TrackID: rec.ID, Field: name})
	}

	channels := make(map[Field][]float64, len(Fields))
	for _, f := range Fields {
		segs, ok := rec.Channels[f]
		if !ok {
			continue
		}

		cd := encoding.ChannelDecoder{
			MaxValues: d.cfg.maxPoints,
			OnSegment: func(r encoding.SegmentReport) {
				if int64(r.Produced) == r.Declared {
					return
				}
				diags = append(diags, Diagnostic{
					Kind:     SegmentSizeMismatch,
					TrackID:  rec.ID,
					Field:    f.String(),
					Segment:  r.Index,
					Actual:   r.Produced,
					Expected: int(r.Declared),
				})
			},
		}

		values, err := cd.Decode(segs)
		if err != nil {
			return tr, nil, fmt.Errorf("track %q: field %s: %w", rec.ID, f, err)
		}
		channels[f] = values
	}

	points, mismatches := Assemble(channels, int(rec.Size))
	for i := range mismatches {
		mismatches[i].TrackID = rec.ID
	}
	if d.cfg.strictLengths && len(mismatches) > 0 {
		m := mismatches[0]

		return tr, nil, fmt.Errorf("track %q: field %s: %w: %d vs expected %d",
			rec.ID, m.Field, errs.ErrLengthMismatch, m.Actual, m.Expected)
	}

	tr.Points = points

	return tr, append(diags, mismatches...), nil
}

// sortTracks orders tracks by the floor of their first timestamp, ties broken by ID.
func sortTracks(tracks []Track) {
	slices.SortStableFunc(tracks, func(a, b Track) int {
		if c := cmp.Compare(a.sortKey(), b.sortKey()); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
}
