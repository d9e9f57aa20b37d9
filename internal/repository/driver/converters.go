package driver

import (
	"delivery/internal/entities"
)

func ToDomain(d *DriverDB) *entities.Driver {
	if d == nil {
		return nil
	}

	driverEntity := &entities.Driver{
		ID:                d.ID,
		UserID:            d.UserID,
		VehicleType:       d.VehicleType,
		VehicleNumber:     d.VehicleNumber,
		Available:         d.Available,
		CurrentDeliveryID: d.CurrentDeliveryID,
		Rating:            d.Rating,
		TotalDeliveries:   d.TotalDeliveries,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}

	// A driver without a reported position keeps a nil location.
	if d.Latitude != nil && d.Longitude != nil {
		location := entities.Location{
			Latitude:  *d.Latitude,
			Longitude: *d.Longitude,
		}
		if d.Address != nil {
			location.Address = *d.Address
		}
		driverEntity.Location = &location
	}

	return driverEntity
}

func FromDomainModify(driverModify *entities.DriverModify) *DriverModifyDB {
	if driverModify == nil {
		return nil
	}
	driverDB := &DriverModifyDB{}

	if driverModify.ID != nil {
		driverDB.ID = driverModify.ID
	}
	if driverModify.UserID != nil {
		driverDB.UserID = driverModify.UserID
	}
	if driverModify.VehicleType != nil {
		driverDB.VehicleType = driverModify.VehicleType
	}
	if driverModify.VehicleNumber != nil {
		driverDB.VehicleNumber = driverModify.VehicleNumber
	}
	if driverModify.Location != nil {
		driverDB.Latitude = &driverModify.Location.Latitude
		driverDB.Longitude = &driverModify.Location.Longitude
		if driverModify.Location.Address != "" {
			driverDB.Address = &driverModify.Location.Address
		}
	}
	if driverModify.Available != nil {
		driverDB.Available = driverModify.Available
	}
	if driverModify.Rating != nil {
		driverDB.Rating = driverModify.Rating
	}

	return driverDB
}

func ToDomainList(driversDB []DriverDB) []entities.Driver {
	if len(driversDB) == 0 {
		return []entities.Driver{}
	}

	result := make([]entities.Driver, len(driversDB))
	for i, driverDB := range driversDB {
		result[i] = *ToDomain(&driverDB)
	}
	return result
}
