package errors

import "errors"

var (
	ErrDealNotFound      = errors.New("deal not found")
	ErrInvalidRequest    = errors.New("invalid deal request")
	ErrForbidden         = errors.New("caller is not a platform admin")
	ErrInvalidTransition = errors.New("stage transition not allowed")
)
