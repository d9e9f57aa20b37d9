package entities

import (
	"errors"
	"math"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// Validate rejects NaN and out-of-range coordinates. All locations entering
// the system pass through here once, geo math downstream assumes valid input.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return ErrInvalidCoordinates
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return ErrInvalidCoordinates
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
