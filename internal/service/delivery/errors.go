package delivery

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidDeliveryID     = errors.New("invalid delivery id")
	ErrInvalidStatus         = errors.New("invalid delivery status")

	ErrDeliveryNotFound        = errors.New("delivery not found")
	ErrOrderAlreadyHasDelivery = errors.New("order already has a delivery")

	// ErrInvalidTransition rejects any status change out of a terminal
	// state, and driver references outside the assigned-capable statuses.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoAvailableDrivers means the expanding search exhausted the
	// maximum radius. The delivery stays PENDING, assignment may be
	// retried later.
	ErrNoAvailableDrivers = errors.New("no available drivers")
)
