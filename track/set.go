package track

import (
	"iter"

	"github.com/arloliu/trkdecode/internal/hash"
)

// Set indexes decoded tracks by the xxHash64 of their identifier.
//
// Lookups compare the identifier after the hash match, so colliding names resolve correctly.
type Set struct {
	tracks []Track
	index  map[uint64][]int
}

// NewSet builds a Set over tracks, preserving their order for iteration.
func NewSet(tracks []Track) *Set {
	s := &Set{
		tracks: tracks,
		index:  make(map[uint64][]int, len(tracks)),
	}
	for i, tr := range tracks {
		h := tr.Hash
		if h == 0 {
			h = hash.ID(tr.ID)
		}
		s.index[h] = append(s.index[h], i)
	}

	return s
}

// Lookup returns the track with the given identifier.
func (s *Set) Lookup(id string) (Track, bool) {
	for _, i := range s.index[hash.ID(id)] {
		if s.tracks[i].ID == id {
			return s.tracks[i], true
		}
	}

	return Track{}, false
}

// Len returns the number of tracks.
func (s *Set) Len() int {
	return len(s.tracks)
}

// All iterates over the tracks in their stored order.
func (s *Set) All() iter.Seq[Track] {
	return func(yield func(Track) bool) {
		for _, tr := range s.tracks {
			if !yield(tr) {
				return
			}
		}
	}
}
