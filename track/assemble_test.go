package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAssemble_Complete(t *testing.T) {
	channels := map[Field][]float64{
		FieldAltitude:  {100, 101},
		FieldLatitude:  {46.1, 46.2},
		FieldLongitude: {7.1, 7.2},
		FieldSpeed:     {0, 3.5},
		FieldTime:      {10, 11},
	}

	points, diags := Assemble(channels, 2)

	want := []Point{
		{Altitude: 100, Latitude: 46.1, Longitude: 7.1, Speed: 0, Time: 10},
		{Altitude: 101, Latitude: 46.2, Longitude: 7.2, Speed: 3.5, Time: 11},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, diags)
}

func TestAssemble_ShortChannel(t *testing.T) {
	channels := map[Field][]float64{
		FieldAltitude:  {1, 2, 3},
		FieldLatitude:  {4, 5},
		FieldLongitude: {6, 7, 8},
		FieldSpeed:     {0, 0, 0},
		FieldTime:      {9, 10, 11},
	}

	points, diags := Assemble(channels, 3)

	require.Len(t, points, 3)
	require.Equal(t, 0.0, points[2].Latitude)
	require.Equal(t, 3.0, points[2].Altitude)
	require.Equal(t, 8.0, points[2].Longitude)
	require.Equal(t, []Diagnostic{
		{Kind: LengthMismatch, Field: "lat", Actual: 2, Expected: 3},
	}, diags)
}

func TestAssemble_LongChannelTruncated(t *testing.T) {
	channels := map[Field][]float64{
		FieldAltitude:  {1, 2, 3, 4},
		FieldLatitude:  {1},
		FieldLongitude: {1},
		FieldSpeed:     {1},
		FieldTime:      {1},
	}

	points, diags := Assemble(channels, 1)

	require.Equal(t, []Point{{Altitude: 1, Latitude: 1, Longitude: 1, Speed: 1, Time: 1}}, points)
	require.Len(t, diags, 1)
	require.Equal(t, "alt", diags[0].Field)
	require.Equal(t, 4, diags[0].Actual)
}

func TestAssemble_MissingChannels(t *testing.T) {
	points, diags := Assemble(map[Field][]float64{FieldTime: {5, 6}}, 2)

	require.Equal(t, []Point{{Time: 5}, {Time: 6}}, points)
	require.Len(t, diags, 4)
	for _, d := range diags {
		require.Equal(t, LengthMismatch, d.Kind)
		require.Equal(t, 0, d.Actual)
		require.Equal(t, 2, d.Expected)
	}
}

func TestAssemble_ZeroAndNegative(t *testing.T) {
	points, diags := Assemble(nil, 0)
	require.Empty(t, points)
	require.Empty(t, diags)

	points, _ = Assemble(nil, -3)
	require.Empty(t, points)
}
