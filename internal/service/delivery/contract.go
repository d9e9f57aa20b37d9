//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"
	"time"

	"delivery/internal/entities"
	"delivery/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, createEntity entities.CreateDelivery) (*entities.Delivery, error)
	GetByID(ctx context.Context, id int64) (*entities.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error)
	GetByDriverID(ctx context.Context, driverID int64) ([]entities.Delivery, error)
	GetPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]entities.Delivery, error)
	Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error)
}

type DriverService interface {
	GetDriver(ctx context.Context, id int64) (*entities.Driver, error)
	FindAvailable(ctx context.Context, center entities.Location, radiusMeters float64) ([]entities.Driver, error)
	UpdateLocation(ctx context.Context, id int64, location entities.Location) (*entities.Driver, error)
	ReserveForDelivery(ctx context.Context, id, deliveryID int64) (*entities.Driver, error)
	ReleaseFromDelivery(ctx context.Context, id int64, completed bool) (*entities.Driver, error)
}

type ETAFactory interface {
	EstimateArrival(now time.Time, driver, pickup, dropoff entities.Location) time.Time
}

type EventProducer interface {
	DeliveryAssigned(ctx context.Context, deliveryEntity *entities.Delivery, driverEntity *entities.Driver) error
	DeliveryPickedUp(ctx context.Context, deliveryEntity *entities.Delivery) error
	DeliveryInTransit(ctx context.Context, deliveryEntity *entities.Delivery, location entities.Location) error
	DeliveryCompleted(ctx context.Context, deliveryEntity *entities.Delivery) error
	DeliveryFailed(ctx context.Context, deliveryEntity *entities.Delivery, reason string) error
	DeliveryCancelled(ctx context.Context, deliveryEntity *entities.Delivery, reason string) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
