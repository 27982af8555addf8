package track

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371000

// Summary holds aggregate figures for one track.
type Summary struct {
	Points      int
	Start       time.Time
	End         time.Time
	Duration    time.Duration
	MinAltitude float64
	MaxAltitude float64
	MaxSpeed    float64
	MeanSpeed   float64
	Distance    float64 // Great-circle path length in meters
}

// Summarize computes a Summary over points. An empty slice yields the zero Summary.
func Summarize(points []Point) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	alts := make([]float64, len(points))
	speeds := make([]float64, len(points))
	for i, p := range points {
		alts[i] = p.Altitude
		speeds[i] = p.Speed
	}

	var dist float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dist += haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	}

	start := points[0].Timestamp()
	end := points[len(points)-1].Timestamp()

	return Summary{
		Points:      len(points),
		Start:       start,
		End:         end,
		Duration:    end.Sub(start),
		MinAltitude: floats.Min(alts),
		MaxAltitude: floats.Max(alts),
		MaxSpeed:    floats.Max(speeds),
		MeanSpeed:   stat.Mean(speeds, nil),
		Distance:    dist,
	}
}

// haversine returns the great-circle distance in meters between two coordinates in degrees.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
