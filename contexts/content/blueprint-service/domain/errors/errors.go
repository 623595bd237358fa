package errors

import "errors"

var (
	ErrBlueprintNotFound = errors.New("blueprint not found")
	ErrVideoNotFound     = errors.New("example video not found")
	ErrInvalidRequest    = errors.New("invalid blueprint request")
	ErrForbidden         = errors.New("caller lacks the required role")
	ErrUnknownSection    = errors.New("section name is not recognized")
)
