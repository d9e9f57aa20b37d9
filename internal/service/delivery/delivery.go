package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery/internal/entities"
	driverservice "delivery/internal/service/driver"
	"delivery/pkg/logger"
)

// Driver search policy: start close to the pickup point and widen the
// ring until a driver turns up or the cap is reached.
const (
	searchRadiusKm    = 5.0
	maxSearchRadiusKm = 20.0
	radiusIncrementKm = 5.0
	metersPerKm       = 1000.0

	// How many times a lost reservation race triggers a fresh search
	// before giving up. Each retry re-reads the directory, so a stolen
	// candidate is simply skipped on the next pass.
	reservationAttempts = 3
)

// Delivery coordinates the delivery lifecycle: creation, driver
// assignment, status transitions and the lifecycle events the rest of
// the platform consumes. It owns no state of its own, all reads and
// writes go through the delivery repository and the driver service.
type Delivery struct {
	log           serviceLogger
	repository    Repository
	driverService DriverService
	etaFactory    ETAFactory
	eventProducer EventProducer
	txManager     TxManager
}

func New(
	log serviceLogger,
	repository Repository,
	driverService DriverService,
	etaFactory ETAFactory,
	eventProducer EventProducer,
	txManager TxManager,
) *Delivery {
	return &Delivery{
		log:           log,
		repository:    repository,
		driverService: driverService,
		etaFactory:    etaFactory,
		eventProducer: eventProducer,
		txManager:     txManager,
	}
}

// CreateDelivery registers a new PENDING delivery with no driver and no
// timestamps. A second delivery for the same order is rejected with
// ErrOrderAlreadyHasDelivery.
func (s *Delivery) CreateDelivery(ctx context.Context, createEntity entities.CreateDelivery) (*entities.Delivery, error) {
	if !isValidOrderID(createEntity.OrderID) {
		return nil, ErrInvalidOrderID
	}
	if err := createEntity.PickupLocation.Validate(); err != nil {
		return nil, fmt.Errorf("pickup location: %w", err)
	}
	if err := createEntity.DropoffLocation.Validate(); err != nil {
		return nil, fmt.Errorf("dropoff location: %w", err)
	}

	deliveryEntity, err := s.repository.Create(ctx, createEntity)
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	return deliveryEntity, nil
}

// CreateAndAssign creates a delivery and immediately attempts assignment.
// Creation always succeeds independently of assignment: when no driver is
// in range the delivery is returned in PENDING and the caller may retry
// later through AssignDriver.
func (s *Delivery) CreateAndAssign(ctx context.Context, createEntity entities.CreateDelivery) (*entities.Delivery, error) {
	deliveryEntity, err := s.CreateDelivery(ctx, createEntity)
	if err != nil {
		return nil, err
	}

	return s.assignWithFallback(ctx, deliveryEntity), nil
}

// AssignDriver runs the expanding-radius search for an existing delivery.
// A delivery that already left PENDING is returned unchanged, which makes
// redelivered order events a no-op.
func (s *Delivery) AssignDriver(ctx context.Context, deliveryID int64) (*entities.Delivery, error) {
	if !isValidDeliveryID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}

	deliveryEntity, err := s.repository.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	return s.assignDriverTo(ctx, deliveryEntity)
}

func (s *Delivery) GetDelivery(ctx context.Context, id int64) (*entities.Delivery, error) {
	if !isValidDeliveryID(id) {
		return nil, ErrInvalidDeliveryID
	}

	deliveryEntity, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	return deliveryEntity, nil
}

func (s *Delivery) GetDeliveryByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	deliveryEntity, err := s.repository.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get delivery by order: %w", err)
	}

	return deliveryEntity, nil
}

func (s *Delivery) GetDriverDeliveries(ctx context.Context, driverID int64) ([]entities.Delivery, error) {
	if driverID <= 0 {
		return nil, driverservice.ErrInvalidDriverID
	}

	deliveries, err := s.repository.GetByDriverID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("get driver deliveries: %w", err)
	}

	return deliveries, nil
}

// UpdateStatus advances the delivery lifecycle. Terminal deliveries are
// immutable, and ASSIGNED is not reachable here, assignment only happens
// through AssignDriver so the driver reservation cannot be bypassed.
// A terminal transition releases the assigned driver as a side effect.
func (s *Delivery) UpdateStatus(
	ctx context.Context,
	id int64,
	newStatus entities.DeliveryStatusType,
	location *entities.Location,
	reason string,
) (*entities.Delivery, error) {
	if !isValidDeliveryID(id) {
		return nil, ErrInvalidDeliveryID
	}
	if !isValidStatus(newStatus) ||
		newStatus == entities.DeliveryPending ||
		newStatus == entities.DeliveryAssigned {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, newStatus)
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	var updated *entities.Delivery
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}

		if current.Status.IsTerminal() {
			return fmt.Errorf("delivery %d is %s: %w", id, current.Status, ErrInvalidTransition)
		}
		if newStatus.AllowsDriver() && current.DriverID == nil {
			return fmt.Errorf("delivery %d has no driver: %w", id, ErrInvalidTransition)
		}

		modify := entities.DeliveryModify{
			ID:     &id,
			Status: &newStatus,
		}
		if newStatus == entities.DeliveryDelivered {
			now := time.Now().UTC()
			modify.ActualDeliveryTime = &now
		}
		// FAILED and CANCELLED drop the driver reference, the driver set
		// stays consistent with the assigned-capable statuses.
		if !newStatus.AllowsDriver() {
			modify.ClearDriver = true
		}

		updated, err = s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("update delivery: %w", err)
		}

		if newStatus.IsTerminal() && current.DriverID != nil {
			completed := newStatus == entities.DeliveryDelivered
			if _, err := s.driverService.ReleaseFromDelivery(ctx, *current.DriverID, completed); err != nil {
				return fmt.Errorf("release driver %d: %w", *current.DriverID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusEvent(ctx, updated, location, reason)
	return updated, nil
}

// HandleOrderConfirmed is the event-driven entry point. Redelivered
// events are absorbed: a duplicate order resolves to the existing
// delivery, and an already assigned delivery is returned as is.
func (s *Delivery) HandleOrderConfirmed(ctx context.Context, createEntity entities.CreateDelivery) (*entities.Delivery, error) {
	deliveryEntity, err := s.CreateDelivery(ctx, createEntity)
	if err != nil {
		if !errors.Is(err, ErrOrderAlreadyHasDelivery) {
			return nil, err
		}
		deliveryEntity, err = s.repository.GetByOrderID(ctx, createEntity.OrderID)
		if err != nil {
			return nil, fmt.Errorf("get existing delivery for order %s: %w", createEntity.OrderID, err)
		}
	}

	return s.assignWithFallback(ctx, deliveryEntity), nil
}

// HandleDriverLocationUpdated stores the new driver position and, when
// the driver is mid-delivery, publishes an in-transit update carrying it.
func (s *Delivery) HandleDriverLocationUpdated(ctx context.Context, driverID int64, location entities.Location) error {
	driverEntity, err := s.driverService.UpdateLocation(ctx, driverID, location)
	if err != nil {
		return fmt.Errorf("update driver location: %w", err)
	}

	if driverEntity.CurrentDeliveryID == nil {
		return nil
	}

	deliveryEntity, err := s.repository.GetByID(ctx, *driverEntity.CurrentDeliveryID)
	if err != nil {
		return fmt.Errorf("get current delivery: %w", err)
	}
	if deliveryEntity.Status != entities.DeliveryInTransit {
		return nil
	}

	if err := s.eventProducer.DeliveryInTransit(ctx, deliveryEntity, location); err != nil {
		s.log.Warn("publish delivery_in_transit",
			logger.NewField("delivery", deliveryEntity.ID),
			logger.NewField("error", err),
		)
	}
	return nil
}

// HandleDeliveryCancelled transitions the delivery to CANCELLED, reusing
// the driver-release side effect of UpdateStatus.
func (s *Delivery) HandleDeliveryCancelled(ctx context.Context, deliveryID int64, reason string) error {
	_, err := s.UpdateStatus(ctx, deliveryID, entities.DeliveryCancelled, nil, reason)
	if err != nil {
		return fmt.Errorf("cancel delivery %d: %w", deliveryID, err)
	}
	return nil
}

// ReassignPending retries assignment for deliveries stuck in PENDING
// longer than olderThan. Returns how many got a driver this pass.
func (s *Delivery) ReassignPending(ctx context.Context, olderThan time.Duration, limit int) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	pending, err := s.repository.GetPendingCreatedBefore(ctx, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("get pending deliveries: %w", err)
	}

	var assigned int64
	for i := range pending {
		_, err := s.assignDriverTo(ctx, &pending[i])
		if err != nil {
			if errors.Is(err, ErrNoAvailableDrivers) {
				// Other pending deliveries have different pickup points,
				// keep scanning.
				continue
			}
			return assigned, err
		}
		assigned++
	}

	return assigned, nil
}

func (s *Delivery) assignWithFallback(ctx context.Context, deliveryEntity *entities.Delivery) *entities.Delivery {
	assigned, err := s.assignDriverTo(ctx, deliveryEntity)
	if err != nil {
		if !errors.Is(err, ErrNoAvailableDrivers) {
			s.log.Error("driver assignment failed",
				logger.NewField("delivery", deliveryEntity.ID),
				logger.NewField("order", deliveryEntity.OrderID),
				logger.NewField("error", err),
			)
			return deliveryEntity
		}
		s.log.Warn("no drivers in range, delivery stays pending",
			logger.NewField("delivery", deliveryEntity.ID),
			logger.NewField("order", deliveryEntity.OrderID),
		)
		return deliveryEntity
	}
	return assigned
}

func (s *Delivery) assignDriverTo(ctx context.Context, deliveryEntity *entities.Delivery) (*entities.Delivery, error) {
	if deliveryEntity.Status != entities.DeliveryPending {
		return deliveryEntity, nil
	}

	for attempt := 0; attempt < reservationAttempts; attempt++ {
		candidate, err := s.findCandidate(ctx, deliveryEntity.PickupLocation)
		if err != nil {
			return nil, err
		}

		var (
			updated  *entities.Delivery
			reserved *entities.Driver
		)
		// Reservation and the delivery update commit or roll back
		// together, a crash between the two cannot strand a busy driver
		// without a matching assignment.
		err = s.txManager.Do(ctx, func(ctx context.Context) error {
			var err error
			reserved, err = s.driverService.ReserveForDelivery(ctx, candidate.ID, deliveryEntity.ID)
			if err != nil {
				return fmt.Errorf("reserve driver %d: %w", candidate.ID, err)
			}

			eta := s.etaFactory.EstimateArrival(
				time.Now().UTC(),
				*candidate.Location,
				deliveryEntity.PickupLocation,
				deliveryEntity.DropoffLocation,
			)
			status := entities.DeliveryAssigned

			updated, err = s.repository.Update(ctx, entities.DeliveryModify{
				ID:                    &deliveryEntity.ID,
				DriverID:              &reserved.ID,
				Status:                &status,
				EstimatedDeliveryTime: &eta,
			})
			if err != nil {
				return fmt.Errorf("update delivery %d: %w", deliveryEntity.ID, err)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, driverservice.ErrDriverReserved) {
				// Lost the compare-and-set race, the next pass re-reads
				// the directory without the stolen candidate.
				continue
			}
			return nil, err
		}

		if err := s.eventProducer.DeliveryAssigned(ctx, updated, reserved); err != nil {
			s.log.Warn("publish delivery_assigned",
				logger.NewField("delivery", updated.ID),
				logger.NewField("order", updated.OrderID),
				logger.NewField("error", err),
			)
		}
		return updated, nil
	}

	return nil, ErrNoAvailableDrivers
}

// findCandidate widens the search ring in fixed steps and stops at the
// first non-empty result. The directory orders by rating with the id as
// tie-break, so the head of the slice is always the pick.
func (s *Delivery) findCandidate(ctx context.Context, pickup entities.Location) (*entities.Driver, error) {
	for radiusKm := searchRadiusKm; radiusKm <= maxSearchRadiusKm; radiusKm += radiusIncrementKm {
		drivers, err := s.driverService.FindAvailable(ctx, pickup, radiusKm*metersPerKm)
		if err != nil {
			return nil, fmt.Errorf("find drivers within %.0f km: %w", radiusKm, err)
		}
		if len(drivers) > 0 {
			return &drivers[0], nil
		}
	}
	return nil, ErrNoAvailableDrivers
}

func (s *Delivery) publishStatusEvent(
	ctx context.Context,
	deliveryEntity *entities.Delivery,
	location *entities.Location,
	reason string,
) {
	var err error
	switch deliveryEntity.Status {
	case entities.DeliveryPickedUp:
		err = s.eventProducer.DeliveryPickedUp(ctx, deliveryEntity)
	case entities.DeliveryInTransit:
		loc, locErr := s.inTransitLocation(ctx, deliveryEntity, location)
		if locErr != nil {
			err = locErr
			break
		}
		err = s.eventProducer.DeliveryInTransit(ctx, deliveryEntity, loc)
	case entities.DeliveryDelivered:
		err = s.eventProducer.DeliveryCompleted(ctx, deliveryEntity)
	case entities.DeliveryFailed:
		err = s.eventProducer.DeliveryFailed(ctx, deliveryEntity, reason)
	case entities.DeliveryCancelled:
		err = s.eventProducer.DeliveryCancelled(ctx, deliveryEntity, reason)
	}

	if err != nil {
		// State is the source of truth, events are at-least-once. A lost
		// publish is logged, never rolled back.
		s.log.Warn("publish delivery status event",
			logger.NewField("delivery", deliveryEntity.ID),
			logger.NewField("status", deliveryEntity.Status.String()),
			logger.NewField("error", err),
		)
	}
}

// inTransitLocation resolves the position for an in-transit event: the
// caller-supplied point when present, otherwise the driver's last known
// location.
func (s *Delivery) inTransitLocation(
	ctx context.Context,
	deliveryEntity *entities.Delivery,
	location *entities.Location,
) (entities.Location, error) {
	if location != nil {
		return *location, nil
	}
	if deliveryEntity.DriverID == nil {
		return entities.Location{}, fmt.Errorf("delivery %d has no driver: %w", deliveryEntity.ID, ErrInvalidTransition)
	}

	driverEntity, err := s.driverService.GetDriver(ctx, *deliveryEntity.DriverID)
	if err != nil {
		return entities.Location{}, fmt.Errorf("get driver for in-transit event: %w", err)
	}
	if driverEntity.Location == nil {
		return entities.Location{}, fmt.Errorf("driver %d has no known location", driverEntity.ID)
	}
	return *driverEntity.Location, nil
}
