package errors

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrForbidden            = errors.New("forbidden")
)
