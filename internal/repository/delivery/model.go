package delivery

import "time"

type DeliveryDB struct {
	ID                    int64
	OrderID               string
	DriverID              *int64
	PickupLatitude        float64
	PickupLongitude       float64
	PickupAddress         string
	DropoffLatitude       float64
	DropoffLongitude      float64
	DropoffAddress        string
	Status                string
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type DeliveryModifyDB struct {
	ID                    *int64
	DriverID              *int64
	Status                *string
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Notes                 *string
	ClearDriver           bool
}
