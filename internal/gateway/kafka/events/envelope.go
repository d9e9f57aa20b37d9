package events

import "time"

// Outbound topics. Every payload is JSON keyed by the order id, so all
// events of one order land in one partition and preserve their order.
const (
	TopicDeliveryAssigned  = "delivery_assigned"
	TopicDeliveryPickedUp  = "delivery_picked_up"
	TopicDeliveryInTransit = "delivery_in_transit"
	TopicDeliveryCompleted = "delivery_completed"
	TopicDeliveryFailed    = "delivery_failed"
	TopicDeliveryCancelled = "delivery_cancelled"
)

type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type DeliveryAssignedEvent struct {
	DeliveryID int64  `json:"deliveryId"`
	OrderID    string `json:"orderId"`
	DriverID   int64  `json:"driverId"`
	// driverName carries the driver's user id, consumers resolve the
	// display name themselves.
	DriverName            int64      `json:"driverName"`
	VehicleType           string     `json:"vehicleType,omitempty"`
	VehicleNumber         string     `json:"vehicleNumber,omitempty"`
	Rating                float64    `json:"rating,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	Status                string     `json:"status"`
	Timestamp             time.Time  `json:"timestamp"`
}

type DeliveryStatusEvent struct {
	DeliveryID int64     `json:"deliveryId"`
	OrderID    string    `json:"orderId"`
	DriverID   *int64    `json:"driverId,omitempty"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`

	CurrentLocation    *LocationPayload `json:"currentLocation,omitempty"`
	ActualDeliveryTime *time.Time       `json:"actualDeliveryTime,omitempty"`
	Reason             string           `json:"reason,omitempty"`
}
