package entities

import "time"

type Driver struct {
	ID                int64
	UserID            int64
	VehicleType       string
	VehicleNumber     string
	Location          *Location
	Available         bool
	CurrentDeliveryID *int64
	Rating            float64
	TotalDeliveries   int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type DriverModify struct {
	ID            *int64
	UserID        *int64
	VehicleType   *string
	VehicleNumber *string
	Location      *Location
	Available     *bool
	Rating        *float64
}
