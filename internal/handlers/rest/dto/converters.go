package dto

import "delivery/internal/entities"

func FromDeliveryEntity(e *entities.Delivery) Delivery {
	return Delivery{
		ID:                    e.ID,
		OrderID:               e.OrderID,
		DriverID:              e.DriverID,
		PickupLocation:        FromLocationEntity(e.PickupLocation),
		DropoffLocation:       FromLocationEntity(e.DropoffLocation),
		Status:                e.Status.String(),
		EstimatedDeliveryTime: e.EstimatedDeliveryTime,
		ActualDeliveryTime:    e.ActualDeliveryTime,
		Notes:                 e.Notes,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func FromDeliveryEntities(list []entities.Delivery) []Delivery {
	res := make([]Delivery, 0, len(list))
	for i := range list {
		res = append(res, FromDeliveryEntity(&list[i]))
	}
	return res
}

func FromDriverEntity(e *entities.Driver) Driver {
	res := Driver{
		ID:                e.ID,
		UserID:            e.UserID,
		VehicleType:       e.VehicleType,
		VehicleNumber:     e.VehicleNumber,
		Available:         e.Available,
		CurrentDeliveryID: e.CurrentDeliveryID,
		Rating:            e.Rating,
		TotalDeliveries:   e.TotalDeliveries,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.Location != nil {
		loc := FromLocationEntity(*e.Location)
		res.Location = &loc
	}
	return res
}

func FromLocationEntity(l entities.Location) Location {
	return Location{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Address:   l.Address,
	}
}

func (l Location) ToEntity() entities.Location {
	return entities.Location{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Address:   l.Address,
	}
}
