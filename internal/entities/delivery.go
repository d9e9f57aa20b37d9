package entities

import "time"

type Delivery struct {
	ID                    int64
	OrderID               string
	DriverID              *int64
	PickupLocation        Location
	DropoffLocation       Location
	Status                DeliveryStatusType
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type DeliveryStatusType string

const (
	DeliveryPending   DeliveryStatusType = "PENDING"
	DeliveryAssigned  DeliveryStatusType = "ASSIGNED"
	DeliveryPickedUp  DeliveryStatusType = "PICKED_UP"
	DeliveryInTransit DeliveryStatusType = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatusType = "DELIVERED"
	DeliveryFailed    DeliveryStatusType = "FAILED"
	DeliveryCancelled DeliveryStatusType = "CANCELLED"
)

func (s DeliveryStatusType) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is accepted from s.
func (s DeliveryStatusType) IsTerminal() bool {
	switch s {
	case DeliveryDelivered, DeliveryFailed, DeliveryCancelled:
		return true
	default:
		return false
	}
}

// AllowsDriver reports whether a delivery in status s may carry a driver
// reference. DriverID is set iff the status is in this set.
func (s DeliveryStatusType) AllowsDriver() bool {
	switch s {
	case DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit, DeliveryDelivered:
		return true
	default:
		return false
	}
}

type CreateDelivery struct {
	OrderID         string
	PickupLocation  Location
	DropoffLocation Location
	Notes           string
}

type DeliveryModify struct {
	ID                    *int64
	DriverID              *int64
	Status                *DeliveryStatusType
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Notes                 *string

	// ClearDriver nulls the driver reference, a nil DriverID alone means
	// "leave as is".
	ClearDriver bool
}
