package encoding

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/format"
)

func TestDiffSegment_AppendTo_Width8(t *testing.T) {
	seg := DiffSegment{Base: 10, Factor: 2, Bitwidth: 8, Data: "Af8=", Size: 3}

	got, err := seg.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 12, 10}, got)
	require.Equal(t, format.EncodingBase64Diff, seg.Encoding())
	require.Equal(t, int64(3), seg.DeclaredSize())
}

func TestDiffSegment_AppendTo_Width8_SignBoundary(t *testing.T) {
	data := base64.StdEncoding.EncodeToString([]byte{127, 128})
	seg := DiffSegment{Base: 0, Factor: 1, Bitwidth: 8, Data: data}

	got, err := seg.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 127, -1}, got)
}

func TestDiffSegment_AppendTo_Width12_SignExtension(t *testing.T) {
	// 0x800 and 0x001 packed into three bytes
	seg := DiffSegment{Base: 0, Factor: 1, Bitwidth: 12, Data: "gAAB"}

	got, err := seg.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, -2048, -2047}, got)
}

func TestDiffSegment_AppendTo_Width12_Positive(t *testing.T) {
	// 0x001 and 0x002
	seg := DiffSegment{Base: 100, Factor: 0.5, Bitwidth: 12, Data: "ABAC"}

	got, err := seg.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, []float64{100, 100.5, 101.5}, got)
}

func TestDiffSegment_AppendTo_Width12_Example(t *testing.T) {
	seg := DiffSegment{Base: 0, Factor: 1, Bitwidth: 12, Data: "ERIiMzQ="}

	got, err := seg.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0x111, 0x111 + 0x222, 0x111 + 0x222 + 0x333}, got)
}

func TestDiffSegment_AppendTo_EmptyData(t *testing.T) {
	seg := DiffSegment{Base: 5, Factor: 1, Bitwidth: 8, Data: ""}

	got, err := seg.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, []float64{5}, got)
}

func TestDiffSegment_AppendTo_BadTransport(t *testing.T) {
	seg := DiffSegment{Base: 0, Factor: 1, Bitwidth: 8, Data: "not base64!"}

	got, err := seg.AppendTo([]float64{1})
	require.ErrorIs(t, err, errs.ErrBadTransport)
	require.Equal(t, []float64{1}, got)
}

func TestDiffSegment_AppendTo_Unpadded(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []float64
	}{
		{"one byte short of a group", "Af8", []float64{10, 12, 10}},
		{"two bytes short of a group", "AQ", []float64{10, 12}},
		{"padded", "AQ==", []float64{10, 12}},
		{"full group", "Af8C", []float64{10, 12, 10, 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := DiffSegment{Base: 10, Factor: 2, Bitwidth: 8, Data: tt.data}

			got, err := seg.AppendTo(nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, len(tt.want), seg.MaxLen())
		})
	}
}

func TestDiffSegment_AppendTo_InvalidAlphabet(t *testing.T) {
	for _, data := range []string{"Af*8", "Af8-", "A", "Af=8"} {
		seg := DiffSegment{Base: 0, Factor: 1, Bitwidth: 8, Data: data}

		_, err := seg.AppendTo(nil)
		require.ErrorIs(t, err, errs.ErrBadTransport, data)
	}
}

func TestDiffSegment_AppendTo_UnsupportedBitwidth(t *testing.T) {
	seg := DiffSegment{Base: 0, Factor: 1, Bitwidth: 16, Data: "AAAA"}

	_, err := seg.AppendTo(nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedBitwidth)
}

func TestDiffSegment_MaxLen(t *testing.T) {
	data := base64.StdEncoding.EncodeToString(make([]byte, 6))

	require.Equal(t, 7, DiffSegment{Bitwidth: 8, Data: data}.MaxLen())
	require.Equal(t, 5, DiffSegment{Bitwidth: 12, Data: data}.MaxLen())
	require.Equal(t, 1, DiffSegment{Bitwidth: 8}.MaxLen())

	// "Af8=" carries two bytes; padding is not counted.
	require.Equal(t, 3, DiffSegment{Bitwidth: 8, Data: "Af8="}.MaxLen())
	require.Equal(t, 2, DiffSegment{Bitwidth: 12, Data: "Af8="}.MaxLen())
}
