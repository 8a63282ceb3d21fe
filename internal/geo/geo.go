// Package geo provides great-circle distance math and coordinate types.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const earthRadiusMiles = 3958.8

// ErrOutOfRange is returned when a coordinate falls outside valid geographic bounds.
var ErrOutOfRange = errors.New("coordinate out of range")

// Distance returns the haversine distance in miles between two lat/lng points,
// rounded to one decimal place.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return round1(earthRadiusMiles * c)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Point is a latitude/longitude pair. The zero Point means "unresolved".
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// IsZero reports whether p is the (0,0) unresolved sentinel.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// NeedsGeocode reports whether either coordinate is missing.
func (p Point) NeedsGeocode() bool {
	return p.Lat == 0 || p.Lng == 0
}

// InRange reports whether both coordinates are finite and within geographic bounds.
func (p Point) InRange() bool {
	return inRange(p.Lat, p.Lng)
}

// Valid reports whether p is a real, resolved location.
func (p Point) Valid() bool {
	return !p.IsZero() && p.InRange()
}

func inRange(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// UserLocation is the caller's current position. Accuracy is in meters when known.
type UserLocation struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Validate checks that the location is a usable position.
func (u UserLocation) Validate() error {
	if !inRange(u.Latitude, u.Longitude) {
		return fmt.Errorf("%w: %g,%g", ErrOutOfRange, u.Latitude, u.Longitude)
	}
	if u.Accuracy != nil && (*u.Accuracy < 0 || math.IsNaN(*u.Accuracy)) {
		return fmt.Errorf("%w: accuracy %g", ErrOutOfRange, *u.Accuracy)
	}
	return nil
}

// DistanceTo returns the distance in miles from u to p.
func (u UserLocation) DistanceTo(p Point) float64 {
	return Distance(u.Latitude, u.Longitude, p.Lat, p.Lng)
}
