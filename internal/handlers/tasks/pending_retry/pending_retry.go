package pending_retry

import (
	"context"
	"time"

	"delivery/pkg/logger"
)

type Service interface {
	ReassignPending(ctx context.Context, olderThan time.Duration, limit int) (int64, error)
}

// PendingRetry periodically re-runs driver assignment for deliveries
// stuck in PENDING: orders confirmed while no driver was in range get
// another chance once somebody frees up or comes online.
type PendingRetry struct {
	log       logger.Logger
	service   Service
	interval  time.Duration
	olderThan time.Duration
	batchSize int
}

func NewPendingRetry(log logger.Logger, service Service, interval, olderThan time.Duration, batchSize int) *PendingRetry {
	return &PendingRetry{
		log:       log,
		service:   service,
		interval:  interval,
		olderThan: olderThan,
		batchSize: batchSize,
	}
}

func (p *PendingRetry) TTL() time.Duration {
	return p.interval
}

func (p *PendingRetry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	assigned, err := p.service.ReassignPending(ctxWithTimeout, p.olderThan, p.batchSize)

	if assigned > 0 {
		p.log.With(
			logger.NewField("assigned_deliveries", assigned),
		).Info("pending retry")
	}

	return err
}

func (p *PendingRetry) Info() string {
	return "pending delivery retry"
}
