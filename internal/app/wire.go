//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	eventsGateway "delivery/internal/gateway/kafka/events"
	"delivery/internal/handlers/rest/delivery_by_order_get"
	"delivery/internal/handlers/rest/delivery_get"
	"delivery/internal/handlers/rest/delivery_post"
	"delivery/internal/handlers/rest/delivery_status_patch"
	"delivery/internal/handlers/rest/driver_availability_patch"
	"delivery/internal/handlers/rest/driver_deliveries_get"
	"delivery/internal/handlers/rest/driver_get"
	"delivery/internal/handlers/rest/driver_location_patch"
	"delivery/internal/handlers/rest/driver_post"
	"delivery/internal/handlers/rest/drivers_get"
	"delivery/internal/handlers/tasks/pending_retry"
	"delivery/internal/pkg/config"
	"delivery/internal/pkg/factory/delivery_eta"

	deliveryRepo "delivery/internal/repository/delivery"
	driverRepo "delivery/internal/repository/driver"
	deliveryService "delivery/internal/service/delivery"
	driverService "delivery/internal/service/driver"

	"delivery/pkg/background"
	"delivery/pkg/logger"
	"delivery/pkg/querier"
	"delivery/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	RetryInterval  time.Duration
	RetryOlderThan time.Duration
	RetryBatchSize int
)

type Application struct {
	ServiceDelivery   ServiceDelivery
	ServiceDriver     ServiceDriver
	BackgroundWorkers *background.Worker
}

type ServiceDelivery interface {
	delivery_post.Service
	delivery_get.Service
	delivery_by_order_get.Service
	delivery_status_patch.Service
	driver_deliveries_get.Service
}

type ServiceDriver interface {
	driver_post.Service
	driver_get.Service
	drivers_get.Service
	driver_location_patch.Service
	driver_availability_patch.Service
}

// InitializeApplication wires the HTTP service (cmd/service).
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideRetryInterval,
		provideRetryOlderThan,
		provideRetryBatchSize,

		provideDriverRepository,
		provideDeliveryRepository,
		provideEventGateway,

		provideServiceDriver,
		provideServiceDelivery,
		delivery_eta.New,

		providePendingRetryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceDriver), new(*driverService.Driver)),

		wire.Bind(new(driverService.Repository), new(*driverRepo.Repository)),
		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(deliveryService.DriverService), new(*driverService.Driver)),
		wire.Bind(new(deliveryService.ETAFactory), new(*delivery_eta.ETAFactory)),
		wire.Bind(new(deliveryService.EventProducer), new(*eventsGateway.EventGateway)),

		wire.Bind(new(driverService.TxManager), new(*tx.Manager)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),

		wire.Bind(new(pending_retry.Service), new(*deliveryService.Delivery)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	ServiceDelivery *deliveryService.Delivery
	ServiceDriver   *driverService.Driver
}

// InitializeKafkaWorkerApp wires the event consumer (cmd/worker-delivery-events).
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideDriverRepository,
		provideDeliveryRepository,
		provideEventGateway,

		provideServiceDriver,
		provideServiceDelivery,
		delivery_eta.New,

		wire.Bind(new(driverService.Repository), new(*driverRepo.Repository)),
		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(deliveryService.DriverService), new(*driverService.Driver)),
		wire.Bind(new(deliveryService.ETAFactory), new(*delivery_eta.ETAFactory)),
		wire.Bind(new(deliveryService.EventProducer), new(*eventsGateway.EventGateway)),

		wire.Bind(new(driverService.TxManager), new(*tx.Manager)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideEventGateway(producer sarama.SyncProducer) *eventsGateway.EventGateway {
	return eventsGateway.New(producer)
}

func provideServiceDriver(
	repository driverService.Repository,
	txManager driverService.TxManager,
) *driverService.Driver {
	return driverService.New(repository, txManager)
}

func provideServiceDelivery(
	log logger.Logger,
	repository deliveryService.Repository,
	driverSvc deliveryService.DriverService,
	etaFactory deliveryService.ETAFactory,
	eventProducer deliveryService.EventProducer,
	txManager deliveryService.TxManager,
) *deliveryService.Delivery {
	return deliveryService.New(
		log,
		repository,
		driverSvc,
		etaFactory,
		eventProducer,
		txManager,
	)
}

func provideRetryInterval(cfg *config.Config) RetryInterval {
	return RetryInterval(cfg.Tasks.PendingRetryInterval)
}

func provideRetryOlderThan(cfg *config.Config) RetryOlderThan {
	return RetryOlderThan(cfg.Tasks.PendingRetryOlderThan)
}

func provideRetryBatchSize(cfg *config.Config) RetryBatchSize {
	return RetryBatchSize(cfg.Tasks.PendingRetryBatchSize)
}

func providePendingRetryTask(
	log logger.Logger,
	deliveryService pending_retry.Service,
	interval RetryInterval,
	olderThan RetryOlderThan,
	batchSize RetryBatchSize,
) *pending_retry.PendingRetry {
	return pending_retry.NewPendingRetry(
		log,
		deliveryService,
		time.Duration(interval),
		time.Duration(olderThan),
		int(batchSize),
	)
}

func provideTaskList(
	pendingRetryTask *pending_retry.PendingRetry,
) []background.Task {
	return []background.Task{
		pendingRetryTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
