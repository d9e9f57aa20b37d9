// Package dto defines the JSON bodies of the REST API.
package dto

import "time"

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type DeliveryCreate struct {
	OrderID         string   `json:"orderId"`
	PickupLocation  Location `json:"pickupLocation"`
	DropoffLocation Location `json:"dropoffLocation"`
	Notes           string   `json:"notes,omitempty"`
}

type Delivery struct {
	ID                    int64      `json:"id"`
	OrderID               string     `json:"orderId"`
	DriverID              *int64     `json:"driverId,omitempty"`
	PickupLocation        Location   `json:"pickupLocation"`
	DropoffLocation       Location   `json:"dropoffLocation"`
	Status                string     `json:"status"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type DeliveryStatusUpdate struct {
	Status   string    `json:"status"`
	Location *Location `json:"location,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

type DriverCreate struct {
	UserID        int64     `json:"userId"`
	VehicleType   string    `json:"vehicleType"`
	VehicleNumber string    `json:"vehicleNumber"`
	Location      *Location `json:"location,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
}

type DriverCreateResponse struct {
	ID int64 `json:"id"`
}

type Driver struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	VehicleType       string    `json:"vehicleType"`
	VehicleNumber     string    `json:"vehicleNumber"`
	Location          *Location `json:"location,omitempty"`
	Available         bool      `json:"available"`
	CurrentDeliveryID *int64    `json:"currentDeliveryId,omitempty"`
	Rating            float64   `json:"rating"`
	TotalDeliveries   int64     `json:"totalDeliveries"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type DriverLocationUpdate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type DriverAvailabilityUpdate struct {
	Available bool `json:"available"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}
