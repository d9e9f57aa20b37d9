package driver

import "time"

type DriverDB struct {
	ID                int64
	UserID            int64
	VehicleType       string
	VehicleNumber     string
	Latitude          *float64
	Longitude         *float64
	Address           *string
	Available         bool
	CurrentDeliveryID *int64
	Rating            float64
	TotalDeliveries   int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type DriverModifyDB struct {
	ID            *int64
	UserID        *int64
	VehicleType   *string
	VehicleNumber *string
	Latitude      *float64
	Longitude     *float64
	Address       *string
	Available     *bool
	Rating        *float64
}
