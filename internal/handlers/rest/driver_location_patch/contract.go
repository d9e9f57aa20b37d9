//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_location_patch_test
package driver_location_patch

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
	UpdateLocation(ctx context.Context, id int64, location entities.Location) (*entities.Driver, error)
}
