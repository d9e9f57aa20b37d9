package driver

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidDriverID       = errors.New("invalid driver id")
	ErrInvalidRadius         = errors.New("invalid search radius")

	ErrDriverNotFound = errors.New("driver not found")
	ErrDriverConflict = errors.New("driver already exists")

	// ErrDriverReserved is the lost side of the reservation compare-and-set:
	// another coordinator took the driver between search and reserve.
	ErrDriverReserved = errors.New("driver already reserved")

	// ErrDriverBusy rejects a manual availability toggle while the driver
	// still holds an active delivery.
	ErrDriverBusy = errors.New("driver has an active delivery")
)
