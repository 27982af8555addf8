package track

import (
	"math"
	"time"
)

// Point is one reconstructed sample of a track.
//
// Latitude and Longitude are in degrees, Altitude in meters, Speed in the device's
// native unit and Time in seconds since the Unix epoch with a fractional sub-second part.
type Point struct {
	Altitude  float64
	Latitude  float64
	Longitude float64
	Speed     float64
	Time      float64
}

// Timestamp converts Time to a UTC time.Time.
//
// Seconds are floor(Time) and nanoseconds are floor(frac(Time)*1e9), so sub-nanosecond
// precision is truncated, never rounded up into the next second.
func (p Point) Timestamp() time.Time {
	sec := math.Floor(p.Time)
	nsec := math.Floor((p.Time - sec) * 1e9)

	return time.Unix(int64(sec), int64(nsec)).UTC()
}

// Field enumerates the five channels of a Point.
type Field uint8

const (
	FieldAltitude Field = iota
	FieldLatitude
	FieldLongitude
	FieldSpeed
	FieldTime
)

// Fields lists every channel in assembly order.
var Fields = [...]Field{FieldAltitude, FieldLatitude, FieldLongitude, FieldSpeed, FieldTime}

var fieldNames = [...]string{
	FieldAltitude:  "alt",
	FieldLatitude:  "lat",
	FieldLongitude: "lon",
	FieldSpeed:     "speed",
	FieldTime:      "time",
}

// String returns the channel's key in the document's "data" object.
func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}

	return "unknown"
}

// ParseField maps a "data" key to its Field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if fieldNames[f] == name {
			return f, true
		}
	}

	return 0, false
}

// Slot returns a pointer to the Point member that holds this channel.
// It returns nil for values outside the enumeration.
func (f Field) Slot(p *Point) *float64 {
	switch f {
	case FieldAltitude:
		return &p.Altitude
	case FieldLatitude:
		return &p.Latitude
	case FieldLongitude:
		return &p.Longitude
	case FieldSpeed:
		return &p.Speed
	case FieldTime:
		return &p.Time
	default:
		return nil
	}
}
