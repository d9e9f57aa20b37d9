package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"delivery/internal/entities"
	retrierconfig "delivery/pkg/retrier"
	"delivery/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "delivery-events"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// EventGateway publishes delivery lifecycle events. The producer is
// idempotent with full-ISR acks, the retrier on top covers transient
// broker errors the producer gives up on.
type EventGateway struct {
	producer producer
	retrier  retrier
}

func New(producer producer) *EventGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil,
	}

	return &EventGateway{
		producer: producer,
		retrier:  backoff_adapter.New(retryConfig),
	}
}

func (g *EventGateway) DeliveryAssigned(ctx context.Context, deliveryEntity *entities.Delivery, driverEntity *entities.Driver) error {
	event := toAssignedEvent(deliveryEntity, driverEntity, time.Now().UTC())
	return g.publish(ctx, TopicDeliveryAssigned, deliveryEntity.OrderID, event)
}

func (g *EventGateway) DeliveryPickedUp(ctx context.Context, deliveryEntity *entities.Delivery) error {
	event := toStatusEvent(deliveryEntity, time.Now().UTC())
	return g.publish(ctx, TopicDeliveryPickedUp, deliveryEntity.OrderID, event)
}

func (g *EventGateway) DeliveryInTransit(ctx context.Context, deliveryEntity *entities.Delivery, location entities.Location) error {
	event := toStatusEvent(deliveryEntity, time.Now().UTC())
	event.CurrentLocation = toLocationPayload(location)
	return g.publish(ctx, TopicDeliveryInTransit, deliveryEntity.OrderID, event)
}

func (g *EventGateway) DeliveryCompleted(ctx context.Context, deliveryEntity *entities.Delivery) error {
	event := toStatusEvent(deliveryEntity, time.Now().UTC())
	event.ActualDeliveryTime = deliveryEntity.ActualDeliveryTime
	return g.publish(ctx, TopicDeliveryCompleted, deliveryEntity.OrderID, event)
}

func (g *EventGateway) DeliveryFailed(ctx context.Context, deliveryEntity *entities.Delivery, reason string) error {
	event := toStatusEvent(deliveryEntity, time.Now().UTC())
	event.Reason = reason
	return g.publish(ctx, TopicDeliveryFailed, deliveryEntity.OrderID, event)
}

func (g *EventGateway) DeliveryCancelled(ctx context.Context, deliveryEntity *entities.Delivery, reason string) error {
	event := toStatusEvent(deliveryEntity, time.Now().UTC())
	event.Reason = reason
	return g.publish(ctx, TopicDeliveryCancelled, deliveryEntity.OrderID, event)
}

func (g *EventGateway) publish(ctx context.Context, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("gateway events, marshal %s: %w", topic, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	err = g.sendWithMetrics(ctx, topic, msg)
	if err != nil {
		return fmt.Errorf("gateway events, publish %s: %w", topic, err)
	}

	return nil
}

func (g *EventGateway) sendWithMetrics(ctx context.Context, topic string, msg *sarama.ProducerMessage) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		_, _, sendErr := g.producer.SendMessage(msg)
		return sendErr
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	GatewayPublishDuration.WithLabelValues(serviceName, topic, result).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, topic, result).Inc()
	}

	return err
}
