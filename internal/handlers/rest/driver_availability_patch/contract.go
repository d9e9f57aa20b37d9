//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_availability_patch_test
package driver_availability_patch

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
	SetAvailability(ctx context.Context, id int64, available bool) (*entities.Driver, error)
}
