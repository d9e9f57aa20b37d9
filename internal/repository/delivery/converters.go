package delivery

import (
	"delivery/internal/entities"
)

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}

	return &entities.Delivery{
		ID:       d.ID,
		OrderID:  d.OrderID,
		DriverID: d.DriverID,
		PickupLocation: entities.Location{
			Latitude:  d.PickupLatitude,
			Longitude: d.PickupLongitude,
			Address:   d.PickupAddress,
		},
		DropoffLocation: entities.Location{
			Latitude:  d.DropoffLatitude,
			Longitude: d.DropoffLongitude,
			Address:   d.DropoffAddress,
		},
		Status:                entities.DeliveryStatusType(d.Status),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		ActualDeliveryTime:    d.ActualDeliveryTime,
		Notes:                 d.Notes,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func FromDomainModify(deliveryModify *entities.DeliveryModify) *DeliveryModifyDB {
	if deliveryModify == nil {
		return nil
	}
	deliveryDB := &DeliveryModifyDB{
		ClearDriver: deliveryModify.ClearDriver,
	}

	if deliveryModify.ID != nil {
		deliveryDB.ID = deliveryModify.ID
	}
	if deliveryModify.DriverID != nil {
		deliveryDB.DriverID = deliveryModify.DriverID
	}
	if deliveryModify.Status != nil {
		status := deliveryModify.Status.String()
		deliveryDB.Status = &status
	}
	if deliveryModify.EstimatedDeliveryTime != nil {
		deliveryDB.EstimatedDeliveryTime = deliveryModify.EstimatedDeliveryTime
	}
	if deliveryModify.ActualDeliveryTime != nil {
		deliveryDB.ActualDeliveryTime = deliveryModify.ActualDeliveryTime
	}
	if deliveryModify.Notes != nil {
		deliveryDB.Notes = deliveryModify.Notes
	}

	return deliveryDB
}

func ToDomainList(deliveriesDB []DeliveryDB) []entities.Delivery {
	if len(deliveriesDB) == 0 {
		return []entities.Delivery{}
	}

	result := make([]entities.Delivery, len(deliveriesDB))
	for i, deliveryDB := range deliveriesDB {
		result[i] = *ToDomain(&deliveryDB)
	}
	return result
}
