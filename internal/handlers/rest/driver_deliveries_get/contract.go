//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_deliveries_get_test
package driver_deliveries_get

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
	GetDriverDeliveries(ctx context.Context, driverID int64) ([]entities.Delivery, error)
}
