package errors

import "errors"

var (
	ErrNotConnected   = errors.New("brand has no discord guild connected")
	ErrOAuthFailed    = errors.New("discord bot installation failed")
	ErrInvalidRequest = errors.New("invalid request")
	ErrForbidden      = errors.New("forbidden")
)
