package track

import "fmt"

// DiagnosticKind classifies a non-fatal finding.
type DiagnosticKind uint8

const (
	// LengthMismatch: a channel decoded to a different number of samples than the track size.
	LengthMismatch DiagnosticKind = iota + 1
	// SegmentSizeMismatch: a segment produced a different number of samples than it declared.
	SegmentSizeMismatch
	// EmptyTrack: a track has no points and was left out of the ordered output.
	EmptyTrack
	// UnknownField: a "data" key is not one of the five channels and was ignored.
	UnknownField
)

func (k DiagnosticKind) String() string {
	switch k {
	case LengthMismatch:
		return "LengthMismatch"
	case SegmentSizeMismatch:
		return "SegmentSizeMismatch"
	case EmptyTrack:
		return "EmptyTrack"
	case UnknownField:
		return "UnknownField"
	default:
		return "Unknown"
	}
}

// Diagnostic is a structured, non-fatal report produced alongside a decode result.
type Diagnostic struct {
	Kind     DiagnosticKind
	TrackID  string
	Field    string // Channel key; empty for EmptyTrack
	Segment  int    // Segment index, SegmentSizeMismatch only
	Actual   int
	Expected int
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case LengthMismatch:
		return fmt.Sprintf("track %q: wrong number of points for %s: %d vs expected %d",
			d.TrackID, d.Field, d.Actual, d.Expected)
	case SegmentSizeMismatch:
		return fmt.Sprintf("track %q: %s segment %d produced %d values, declared %d",
			d.TrackID, d.Field, d.Segment, d.Actual, d.Expected)
	case EmptyTrack:
		return fmt.Sprintf("track %q: no points", d.TrackID)
	case UnknownField:
		return fmt.Sprintf("track %q: ignoring unknown field %q", d.TrackID, d.Field)
	default:
		return fmt.Sprintf("track %q: %s", d.TrackID, d.Kind)
	}
}
