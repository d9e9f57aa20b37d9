//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_status_patch_test
package delivery_status_patch

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
	UpdateStatus(ctx context.Context, id int64, newStatus entities.DeliveryStatusType, location *entities.Location, reason string) (*entities.Delivery, error)
}
