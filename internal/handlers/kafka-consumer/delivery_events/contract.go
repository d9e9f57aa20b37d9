package delivery_events

import (
	"context"

	"delivery/internal/entities"
	"delivery/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	HandleOrderConfirmed(ctx context.Context, createEntity entities.CreateDelivery) (*entities.Delivery, error)
	HandleDriverLocationUpdated(ctx context.Context, driverID int64, location entities.Location) error
	HandleDeliveryCancelled(ctx context.Context, deliveryID int64, reason string) error
}
