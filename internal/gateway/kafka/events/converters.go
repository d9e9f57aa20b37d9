package events

import (
	"time"

	"delivery/internal/entities"
)

func toAssignedEvent(deliveryEntity *entities.Delivery, driverEntity *entities.Driver, now time.Time) DeliveryAssignedEvent {
	return DeliveryAssignedEvent{
		DeliveryID:            deliveryEntity.ID,
		OrderID:               deliveryEntity.OrderID,
		DriverID:              driverEntity.ID,
		DriverName:            driverEntity.UserID,
		VehicleType:           driverEntity.VehicleType,
		VehicleNumber:         driverEntity.VehicleNumber,
		Rating:                driverEntity.Rating,
		EstimatedDeliveryTime: deliveryEntity.EstimatedDeliveryTime,
		Status:                deliveryEntity.Status.String(),
		Timestamp:             now,
	}
}

func toStatusEvent(deliveryEntity *entities.Delivery, now time.Time) DeliveryStatusEvent {
	return DeliveryStatusEvent{
		DeliveryID: deliveryEntity.ID,
		OrderID:    deliveryEntity.OrderID,
		DriverID:   deliveryEntity.DriverID,
		Status:     deliveryEntity.Status.String(),
		Timestamp:  now,
	}
}

func toLocationPayload(location entities.Location) *LocationPayload {
	return &LocationPayload{
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Address:   location.Address,
	}
}
