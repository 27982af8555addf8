// Package gpx renders decoded tracks as GPX 1.1 documents.
//
// Each track becomes one <trk> holding a single <trkseg>. Every point is written
// with lat/lon attributes, an <ele> element taken from the altitude channel and
// a <time> element in RFC 3339 UTC form with millisecond precision. Speed has no
// GPX 1.1 element and is not written.
package gpx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/trkdecode/internal/options"
	"github.com/arloliu/trkdecode/track"
)

const (
	// Namespace is the GPX 1.1 schema namespace.
	Namespace = "http://www.topografix.com/GPX/1/1"
	// Version is the GPX schema version written to the root element.
	Version = "1.1"
	// DefaultCreator is the creator attribute used unless WithCreator overrides it.
	DefaultCreator = "trkdecode"

	timeLayout = "2006-01-02T15:04:05.000Z07:00"
)

type document struct {
	XMLName xml.Name `xml:"gpx"`
	Xmlns   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Tracks  []trk    `xml:"trk"`
}

type trk struct {
	Name     string   `xml:"name,omitempty"`
	Segments []trkseg `xml:"trkseg"`
}

type trkseg struct {
	Points []trkpt `xml:"trkpt"`
}

// trkpt keeps coordinates as preformatted strings; encoding/xml would switch
// to exponent notation for small magnitudes.
type trkpt struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Ele  string `xml:"ele"`
	Time string `xml:"time"`
}

// Writer renders tracks as GPX. The zero value is not usable; create one with NewWriter.
type Writer struct {
	creator string
	indent  string
	names   bool
}

// Option configures a Writer.
type Option = options.Option[*Writer]

// WithCreator overrides the creator attribute of the <gpx> element.
func WithCreator(creator string) Option {
	return options.New(func(w *Writer) error {
		if creator == "" {
			return fmt.Errorf("gpx creator must not be empty")
		}
		w.creator = creator

		return nil
	})
}

// WithIndent sets the per-level indent. An empty string writes the document on one line.
func WithIndent(indent string) Option {
	return options.NoError(func(w *Writer) {
		w.indent = indent
	})
}

// WithTrackNames writes each track's ID as its <name> element.
func WithTrackNames(enabled bool) Option {
	return options.NoError(func(w *Writer) {
		w.names = enabled
	})
}

// NewWriter creates a Writer with the creator "trkdecode" and two-space indentation.
//
// Parameters:
//   - opts: Optional configuration options
//
// Returns:
//   - *Writer: Configured writer
//   - error: Invalid option value
func NewWriter(opts ...Option) (*Writer, error) {
	w := &Writer{
		creator: DefaultCreator,
		indent:  "  ",
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Write encodes tracks, in the given order, as a complete GPX document to dst.
func (w *Writer) Write(dst io.Writer, tracks []track.Track) error {
	if _, err := io.WriteString(dst, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(dst)
	enc.Indent("", w.indent)
	if err := enc.Encode(w.build(tracks)); err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}

	_, err := io.WriteString(dst, "\n")

	return err
}

// Marshal returns the GPX document for tracks.
func (w *Writer) Marshal(tracks []track.Track) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, tracks); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteSegments encodes bare point sequences with a default Writer, one <trk> per sequence.
func WriteSegments(dst io.Writer, segments [][]track.Point) error {
	tracks := make([]track.Track, len(segments))
	for i, seg := range segments {
		tracks[i] = track.Track{Points: seg}
	}

	w, _ := NewWriter()

	return w.Write(dst, tracks)
}

func (w *Writer) build(tracks []track.Track) *document {
	doc := &document{
		Xmlns:   Namespace,
		Version: Version,
		Creator: w.creator,
		Tracks:  make([]trk, 0, len(tracks)),
	}

	for _, t := range tracks {
		seg := trkseg{Points: make([]trkpt, len(t.Points))}
		for i, p := range t.Points {
			seg.Points[i] = trkpt{
				Lat:  formatFloat(p.Latitude),
				Lon:  formatFloat(p.Longitude),
				Ele:  formatFloat(p.Altitude),
				Time: FormatTime(p),
			}
		}

		out := trk{Segments: []trkseg{seg}}
		if w.names {
			out.Name = t.ID
		}
		doc.Tracks = append(doc.Tracks, out)
	}

	return doc
}

// FormatTime renders a point's time as RFC 3339 UTC with exactly three fractional digits.
func FormatTime(p track.Point) string {
	return p.Timestamp().Format(timeLayout)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
