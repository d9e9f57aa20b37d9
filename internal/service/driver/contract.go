//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_test
package driver

import (
	"context"

	"delivery/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, driverModifyEntity entities.DriverModify) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Driver, error)
	GetAll(ctx context.Context) ([]entities.Driver, error)

	FindAvailableWithinRadius(ctx context.Context, center entities.Location, radiusMeters float64) ([]entities.Driver, error)
	UpdateLocation(ctx context.Context, id int64, location entities.Location) (*entities.Driver, error)
	SetAvailability(ctx context.Context, id int64, available bool) (*entities.Driver, error)

	Reserve(ctx context.Context, id, deliveryID int64) (*entities.Driver, error)
	Release(ctx context.Context, id int64, completed bool) (*entities.Driver, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
