// Package hash derives stable 64-bit identifiers for track names.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a track identifier.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

