package delivery_events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"delivery/internal/entities"
	deliveryservice "delivery/internal/service/delivery"
	driverservice "delivery/internal/service/driver"
	"delivery/pkg/logger"
)

// Handler consumes the three inbound delivery topics with one consumer
// group and routes on the claim topic.
type Handler struct {
	deliveryService          Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, deliveryService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		deliveryService:          deliveryService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("delivery events: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Rebalance or consumer group shutdown.
			h.log.Info("delivery events: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing handles a single message. Returns true when
// ConsumeClaim should exit (context cancelled, message left unmarked for
// redelivery), false to keep consuming.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	msgLog := h.log.With(
		logger.NewField("topic", message.Topic),
		logger.NewField("offset", message.Offset),
	)

	var err error
	switch message.Topic {
	case TopicOrderConfirmed:
		err = h.processOrderConfirmed(ctx, msgLog, message.Value)
	case TopicDriverLocationUpdated:
		err = h.processDriverLocationUpdated(ctx, msgLog, message.Value)
	case TopicDeliveryCancelled:
		err = h.processDeliveryCancelled(ctx, msgLog, message.Value)
	default:
		msgLog.Warn("delivery events: message from unexpected topic")
		sess.MarkMessage(message, "")
		return false
	}

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery events: context cancelled, message will be reprocessed")
			return true
		}

		// Everything else is a poison message or tolerated domain outcome.
		// Marking it keeps the partition moving.
		msgLog.With(
			logger.NewField("error", err),
		).Warn("delivery events: failed to process message")
	}

	sess.MarkMessage(message, "")
	return false
}

func (h *Handler) processOrderConfirmed(ctx context.Context, msgLog logger.Logger, value []byte) error {
	var event orderConfirmedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("order confirmed: bad message: %w", err)
	}

	msgLog.With(
		logger.NewField("order", event.OrderID),
	).Info("order confirmed: processing")

	deliveryEntity, err := h.deliveryService.HandleOrderConfirmed(ctx, entities.CreateDelivery{
		OrderID:         event.OrderID,
		PickupLocation:  toLocation(event.RestaurantLocation),
		DropoffLocation: toLocation(event.DeliveryLocation),
		Notes:           event.DeliveryInstructions,
	})
	if err != nil {
		return fmt.Errorf("order confirmed: %s: %w", event.OrderID, err)
	}

	msgLog.With(
		logger.NewField("order", deliveryEntity.OrderID),
		logger.NewField("delivery", deliveryEntity.ID),
		logger.NewField("status", deliveryEntity.Status.String()),
	).Info("order confirmed: processed")
	return nil
}

func (h *Handler) processDriverLocationUpdated(ctx context.Context, msgLog logger.Logger, value []byte) error {
	var event driverLocationUpdatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("driver location: bad message: %w", err)
	}

	err := h.deliveryService.HandleDriverLocationUpdated(ctx, event.DriverID, toLocation(event.Location))
	if err != nil {
		if errors.Is(err, driverservice.ErrDriverNotFound) {
			msgLog.With(
				logger.NewField("driver", event.DriverID),
			).Warn("driver location: unknown driver, skipping")
			return nil
		}
		return fmt.Errorf("driver location: %d: %w", event.DriverID, err)
	}

	return nil
}

func (h *Handler) processDeliveryCancelled(ctx context.Context, msgLog logger.Logger, value []byte) error {
	var event deliveryCancelledEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("delivery cancelled: bad message: %w", err)
	}

	err := h.deliveryService.HandleDeliveryCancelled(ctx, event.DeliveryID, event.Reason)
	if err != nil {
		// Redeliveries of a cancellation hit an already terminal delivery.
		if errors.Is(err, deliveryservice.ErrDeliveryNotFound) ||
			errors.Is(err, deliveryservice.ErrInvalidTransition) {
			msgLog.With(
				logger.NewField("delivery", event.DeliveryID),
				logger.NewField("error", err),
			).Warn("delivery cancelled: stale cancellation, skipping")
			return nil
		}
		return fmt.Errorf("delivery cancelled: %d: %w", event.DeliveryID, err)
	}

	msgLog.With(
		logger.NewField("delivery", event.DeliveryID),
	).Info("delivery cancelled: processed")
	return nil
}

func toLocation(payload locationPayload) entities.Location {
	return entities.Location{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Address:   payload.Address,
	}
}
