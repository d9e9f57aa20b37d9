package delivery_events

// Inbound topics this handler is subscribed to.
const (
	TopicOrderConfirmed        = "order_confirmed"
	TopicDriverLocationUpdated = "driver_location_updated"
	TopicDeliveryCancelled     = "delivery_request_cancelled"
)

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type orderConfirmedEvent struct {
	OrderID              string          `json:"orderId"`
	RestaurantLocation   locationPayload `json:"restaurantLocation"`
	DeliveryLocation     locationPayload `json:"deliveryLocation"`
	DeliveryInstructions string          `json:"deliveryInstructions"`
}

type driverLocationUpdatedEvent struct {
	DriverID int64           `json:"driverId"`
	Location locationPayload `json:"location"`
}

type deliveryCancelledEvent struct {
	DeliveryID int64  `json:"deliveryId"`
	Reason     string `json:"reason"`
}
