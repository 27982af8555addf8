// Package bitpack unpacks fixed-width unsigned integers from a byte stream.
//
// Integers are packed most-significant-bit first with no padding between values,
// so a value may straddle a byte boundary. Only the widths found in device data
// are supported: 8 bits (one value per byte) and 12 bits (two values per three bytes).
package bitpack

import (
	"fmt"
	"iter"

	"github.com/arloliu/trkdecode/errs"
)

// Supported bit widths.
const (
	Width8  = 8
	Width12 = 12
)

// Unpacker is a single-pass, pull-based reader of packed integers.
//
// For 12-bit data the reader is a small state machine over the number of valid bits
// held in acc. Each consumed byte adds 8 bits, moving through the states
// 0 -> 8 -> 16 (emit top 12, keep 4) -> 12 (emit all, reset) -> 0.
// A trailing group of fewer than 12 bits is discarded.
//
// An Unpacker is not safe for concurrent use and cannot be rewound.
type Unpacker struct {
	data  []byte // Source bytes
	pos   int    // Next byte to consume
	width int    // Bits per value
	acc   uint16 // Pending bits, right-aligned
	bits  uint8  // Number of valid bits in acc
}

// New creates an Unpacker over data for the given bitwidth.
//
// Parameters:
//   - data: Packed byte stream (not copied, must not be modified while unpacking)
//   - bitwidth: Bits per value, Width8 or Width12
//
// Returns:
//   - *Unpacker: Reader positioned at the first value
//   - error: errs.ErrUnsupportedBitwidth for any other width
func New(data []byte, bitwidth int) (*Unpacker, error) {
	if bitwidth != Width8 && bitwidth != Width12 {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedBitwidth, bitwidth)
	}

	return &Unpacker{data: data, width: bitwidth}, nil
}

// Next returns the next unpacked value.
//
// Returns:
//   - uint16: The value, in [0, 2^width)
//   - bool: false once the input is exhausted
func (u *Unpacker) Next() (uint16, bool) {
	if u.width == Width8 {
		if u.pos >= len(u.data) {
			return 0, false
		}
		b := u.data[u.pos]
		u.pos++

		return uint16(b), true
	}

	for u.pos < len(u.data) {
		u.acc = u.acc<<8 | uint16(u.data[u.pos])
		u.pos++
		u.bits += 8

		switch u.bits {
		case 16:
			v := (u.acc & 0xFFF0) >> 4
			u.acc &= 0x000F
			u.bits -= 12

			return v, true
		case 12:
			v := u.acc
			u.acc = 0
			u.bits -= 12

			return v, true
		}
		// 8 valid bits held, wait for the next byte
	}

	return 0, false
}

// All returns an iterator over the remaining values.
//
// The iterator drains the Unpacker; ranging over it a second time yields nothing.
func (u *Unpacker) All() iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for {
			v, ok := u.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Count returns how many values an input of byteLen bytes yields at bitwidth:
// floor(8*byteLen/bitwidth). It returns 0 for unsupported widths.
func Count(byteLen int, bitwidth int) int {
	if bitwidth != Width8 && bitwidth != Width12 {
		return 0
	}

	return byteLen * 8 / bitwidth
}
