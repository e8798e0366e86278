package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrAuthentication is returned when the controller login fails.
	ErrAuthentication = errors.New("authentication failed")
	// ErrNotReserved is returned when device information is requested before the
	// sandbox has been reserved (or attached to while reserved).
	ErrNotReserved = errors.New("sandbox not reserved")
	// ErrReservation is returned when the controller does not confirm a reserve or release.
	ErrReservation = errors.New("reservation failed")
	// ErrInvalidOperation is returned when an operation makes no sense for the selected sandbox.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrDeviceNotFound is returned when a device is missing from the reserved sandbox.
	ErrDeviceNotFound = fmt.Errorf("device %w", ErrNotFound)
)

// APIError is returned when the controller answers with a non 2xx status code.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("controller responded with status code %d: %s", e.StatusCode, e.Body)
}
