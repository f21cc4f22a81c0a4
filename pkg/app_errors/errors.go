package apperrors

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrDuplicateEmail      = errors.New("email already registered for this event")
	ErrCapacityExceeded    = errors.New("event has reached maximum capacity")
	ErrInvalidTimezone     = errors.New("invalid timezone identifier")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
