package errors

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("session is not in a state that allows this action")
)
