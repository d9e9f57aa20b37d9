package driver

import (
	"context"
	"fmt"

	"delivery/internal/entities"
)

// Driver is the directory of courier drivers: availability, last known
// location and the single active delivery reference. All mutation of
// driver records goes through this service.
type Driver struct {
	repository Repository
	txManager  TxManager
}

func New(repository Repository, txManager TxManager) *Driver {
	return &Driver{
		repository: repository,
		txManager:  txManager,
	}
}

func (s *Driver) CreateDriver(ctx context.Context, driverModify entities.DriverModify) (int64, error) {
	if driverModify.UserID == nil ||
		driverModify.VehicleType == nil ||
		driverModify.VehicleNumber == nil {
		return 0, ErrMissingRequiredFields
	}

	if !isValidVehicle(*driverModify.VehicleType, *driverModify.VehicleNumber) {
		return 0, ErrMissingRequiredFields
	}
	if driverModify.Rating != nil && !isValidRating(*driverModify.Rating) {
		return 0, fmt.Errorf("rating out of range: %w, got %f", ErrMissingRequiredFields, *driverModify.Rating)
	}
	if driverModify.Location != nil {
		if err := driverModify.Location.Validate(); err != nil {
			return 0, err
		}
	}

	id, err := s.repository.Create(ctx, driverModify)
	if err != nil {
		return 0, fmt.Errorf("create driver: %w", err)
	}

	return id, nil
}

func (s *Driver) GetDriver(ctx context.Context, id int64) (*entities.Driver, error) {
	if !isValidDriverID(id) {
		return nil, ErrInvalidDriverID
	}

	driverEntity, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}

	return driverEntity, nil
}

func (s *Driver) GetDrivers(ctx context.Context) ([]entities.Driver, error) {
	drivers, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get drivers: %w", err)
	}

	return drivers, nil
}

// FindAvailable returns available drivers with a known location within
// radiusMeters of center, ordered by rating descending with the driver id
// as a deterministic tie-break. An empty result is not an error.
func (s *Driver) FindAvailable(ctx context.Context, center entities.Location, radiusMeters float64) ([]entities.Driver, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, ErrInvalidRadius
	}

	drivers, err := s.repository.FindAvailableWithinRadius(ctx, center, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("find available drivers: %w", err)
	}

	return drivers, nil
}

func (s *Driver) UpdateLocation(ctx context.Context, id int64, location entities.Location) (*entities.Driver, error) {
	if !isValidDriverID(id) {
		return nil, ErrInvalidDriverID
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	driverEntity, err := s.repository.UpdateLocation(ctx, id, location)
	if err != nil {
		return nil, fmt.Errorf("update driver location: %w", err)
	}

	return driverEntity, nil
}

// SetAvailability toggles the manual availability flag. Going available
// while holding an active delivery is rejected by the repository with
// ErrDriverBusy, the flag never contradicts the current assignment.
func (s *Driver) SetAvailability(ctx context.Context, id int64, available bool) (*entities.Driver, error) {
	if !isValidDriverID(id) {
		return nil, ErrInvalidDriverID
	}

	driverEntity, err := s.repository.SetAvailability(ctx, id, available)
	if err != nil {
		return nil, fmt.Errorf("set driver availability: %w", err)
	}

	return driverEntity, nil
}

// ReserveForDelivery atomically claims the driver for deliveryID. The
// repository compare-and-sets on available=true, so among concurrent
// reservations exactly one wins and the rest get ErrDriverReserved.
func (s *Driver) ReserveForDelivery(ctx context.Context, id, deliveryID int64) (*entities.Driver, error) {
	if !isValidDriverID(id) {
		return nil, ErrInvalidDriverID
	}

	driverEntity, err := s.repository.Reserve(ctx, id, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("reserve driver: %w", err)
	}

	return driverEntity, nil
}

// ReleaseFromDelivery frees the driver for new assignments. completed
// additionally bumps the lifetime delivery counter.
func (s *Driver) ReleaseFromDelivery(ctx context.Context, id int64, completed bool) (*entities.Driver, error) {
	if !isValidDriverID(id) {
		return nil, ErrInvalidDriverID
	}

	driverEntity, err := s.repository.Release(ctx, id, completed)
	if err != nil {
		return nil, fmt.Errorf("release driver: %w", err)
	}

	return driverEntity, nil
}
