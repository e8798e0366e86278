package lib

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a sandbox, device or result does not exist on the controller.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when the provided input is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrAuthentication is returned when the controller rejects the credentials.
	ErrAuthentication = errors.New("authentication failed")
	// ErrNotReserved is returned when querying devices of a sandbox that is not reserved.
	ErrNotReserved = errors.New("sandbox not reserved")
	// ErrReservation is returned when the controller refuses a reserve or release.
	ErrReservation = errors.New("reservation failed")
	// ErrInvalidOperation is returned when the operation can't be applied to the sandbox,
	// e.g releasing a blueprint without a reserved child.
	ErrInvalidOperation = errors.New("invalid operation")
)

// APIError is returned when the controller answers with a non 2xx status code. It
// can be combined with the sentinel errors, e.g a rejected login is also [ErrAuthentication].
//
//	var apiErr *lib.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.StatusCode, apiErr.Body)
//	}
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("controller responded with status code %d: %s", e.StatusCode, e.Body)
}
