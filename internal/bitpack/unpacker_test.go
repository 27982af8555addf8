package bitpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trkdecode/errs"
)

// pack12 is the inverse of the 12-bit unpacker, used to build test inputs.
func pack12(values []uint16) []byte {
	var out []byte
	for i := 0; i+1 < len(values); i += 2 {
		a, b := values[i], values[i+1]
		out = append(out, byte(a>>4), byte(a<<4)|byte(b>>8), byte(b))
	}
	if len(values)%2 == 1 {
		a := values[len(values)-1]
		out = append(out, byte(a>>4), byte(a<<4))
	}

	return out
}

// unpackAll drains a fresh Unpacker over data into a slice.
func unpackAll(data []byte, bitwidth int) ([]uint16, error) {
	u, err := New(data, bitwidth)
	if err != nil {
		return nil, err
	}

	out := make([]uint16, 0, Count(len(data), bitwidth))
	for v := range u.All() {
		out = append(out, v)
	}

	return out, nil
}

func TestUnpacker_New_UnsupportedBitwidth(t *testing.T) {
	for _, w := range []int{0, 1, 4, 7, 10, 16, 32} {
		u, err := New([]byte{1, 2, 3}, w)
		require.Nil(t, u)
		require.ErrorIs(t, err, errs.ErrUnsupportedBitwidth)
	}
}

func TestUnpacker_Width12_Example(t *testing.T) {
	got, err := unpackAll([]byte{0x11, 0x12, 0x22, 0x33, 0x34}, Width12)
	require.NoError(t, err)
	require.Equal(t, []uint16{0x111, 0x222, 0x333}, got)
}

func TestUnpacker_Width12_NoOutputBeforeTwelveBits(t *testing.T) {
	u, err := New([]byte{0xAB}, Width12)
	require.NoError(t, err)

	_, ok := u.Next()
	require.False(t, ok)
}

func TestUnpacker_Width12_TrailingBitsDiscarded(t *testing.T) {
	// 4 bytes = 32 bits = two values plus 8 leftover bits
	got, err := unpackAll([]byte{0xFF, 0xF0, 0x01, 0x7E}, Width12)
	require.NoError(t, err)
	require.Equal(t, []uint16{0xFFF, 0x001}, got)
}

func TestUnpacker_Width12_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 50; n++ {
		values := make([]uint16, n)
		for i := range values {
			values[i] = uint16(rng.Intn(4096))
		}

		got, err := unpackAll(pack12(values), Width12)
		require.NoError(t, err)
		require.Len(t, got, n)
		if n > 0 {
			require.Equal(t, values, got)
		}
	}
}

func TestUnpacker_Width12_Count(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 64; n++ {
		data := make([]byte, n)
		rng.Read(data)

		got, err := unpackAll(data, Width12)
		require.NoError(t, err)
		require.Len(t, got, n*8/12)
		require.Equal(t, n*8/12, Count(n, Width12))
		for _, v := range got {
			require.LessOrEqual(t, v, uint16(4095))
		}
	}
}

func TestUnpacker_Width8(t *testing.T) {
	data := []byte{0, 1, 127, 128, 255}

	got, err := unpackAll(data, Width8)
	require.NoError(t, err)
	require.Equal(t, []uint16{0, 1, 127, 128, 255}, got)
	require.Equal(t, len(data), Count(len(data), Width8))
}

func TestUnpacker_Width8_Empty(t *testing.T) {
	got, err := unpackAll(nil, Width8)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestUnpacker_All_SinglePass(t *testing.T) {
	u, err := New([]byte{1, 2, 3}, Width8)
	require.NoError(t, err)

	first := 0
	for range u.All() {
		first++
	}
	second := 0
	for range u.All() {
		second++
	}

	require.Equal(t, 3, first)
	require.Equal(t, 0, second)
}

func TestUnpacker_All_EarlyBreak(t *testing.T) {
	u, err := New(pack12([]uint16{1, 2, 3, 4}), Width12)
	require.NoError(t, err)

	for v := range u.All() {
		require.Equal(t, uint16(1), v)

		break
	}

	v, ok := u.Next()
	require.True(t, ok)
	require.Equal(t, uint16(2), v)
}

func TestCount_UnsupportedWidth(t *testing.T) {
	require.Equal(t, 0, Count(10, 16))
}
