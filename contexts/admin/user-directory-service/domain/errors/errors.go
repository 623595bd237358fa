package errors

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrSubmissionNotFound = errors.New("demographic submission not found")
	ErrInvalidRequest     = errors.New("invalid directory request")
	ErrForbidden          = errors.New("caller is not a platform admin")
	ErrAlreadyReviewed    = errors.New("demographic submission already reviewed")
)
