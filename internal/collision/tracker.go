package collision

import (
	"fmt"

	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/internal/hash"
)

// Tracker records track identifiers seen in one document and detects duplicates.
//
// Identifiers are bucketed by their xxHash64. Two different names sharing a hash
// land in the same bucket and are told apart by comparing names, so a hash
// collision is never reported as a duplicate.
type Tracker struct {
	names map[uint64][]string // Hash → names with that hash
}

// NewTracker creates a new duplicate tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64][]string),
	}
}

// Track registers a track identifier and returns its hash.
//
// Returns errs.ErrDuplicateTrack if the same identifier was already registered.
func (t *Tracker) Track(name string) (uint64, error) {
	id := hash.ID(name)

	existing := t.names[id]
	for _, n := range existing {
		if n == name {
			return id, fmt.Errorf("%w: %q", errs.ErrDuplicateTrack, name)
		}
	}

	t.names[id] = append(existing, name)

	return id, nil
}
