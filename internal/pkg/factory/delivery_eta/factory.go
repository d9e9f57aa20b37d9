package delivery_eta

import (
	"time"

	"delivery/internal/entities"
	"delivery/pkg/geo"
)

// Default city-traffic policy. Callers that need a different profile build
// the factory via NewWithPolicy.
const (
	DefaultAvgSpeedKmH   = 30.0
	DefaultPickupBuffer  = 10 * time.Minute
	DefaultDropoffBuffer = 5 * time.Minute
)

type ETAFactory struct {
	avgSpeedKmH   float64
	pickupBuffer  time.Duration
	dropoffBuffer time.Duration
}

func New() *ETAFactory {
	return NewWithPolicy(DefaultAvgSpeedKmH, DefaultPickupBuffer, DefaultDropoffBuffer)
}

func NewWithPolicy(avgSpeedKmH float64, pickupBuffer, dropoffBuffer time.Duration) *ETAFactory {
	if avgSpeedKmH <= 0 {
		avgSpeedKmH = DefaultAvgSpeedKmH
	}
	return &ETAFactory{
		avgSpeedKmH:   avgSpeedKmH,
		pickupBuffer:  pickupBuffer,
		dropoffBuffer: dropoffBuffer,
	}
}

// EstimateArrival returns the expected completion time for a delivery:
// driving time over both legs at the assumed average speed, plus fixed
// pickup and dropoff handling buffers.
func (f *ETAFactory) EstimateArrival(now time.Time, driver, pickup, dropoff entities.Location) time.Time {
	toPickupKm := geo.DistanceKm(toPoint(driver), toPoint(pickup))
	toDropoffKm := geo.DistanceKm(toPoint(pickup), toPoint(dropoff))

	drivingHours := (toPickupKm + toDropoffKm) / f.avgSpeedKmH
	driving := time.Duration(drivingHours * float64(time.Hour))

	return now.Add(driving + f.pickupBuffer + f.dropoffBuffer)
}

func toPoint(l entities.Location) geo.Point {
	return geo.Point{Latitude: l.Latitude, Longitude: l.Longitude}
}
