package delivery

import (
	"strings"

	"delivery/internal/entities"
)

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidDeliveryID(id int64) bool {
	return id > 0
}

func isValidStatus(status entities.DeliveryStatusType) bool {
	switch status {
	case entities.DeliveryPending,
		entities.DeliveryAssigned,
		entities.DeliveryPickedUp,
		entities.DeliveryInTransit,
		entities.DeliveryDelivered,
		entities.DeliveryFailed,
		entities.DeliveryCancelled:
		return true
	default:
		return false
	}
}
