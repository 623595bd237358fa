package errors

import "errors"

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrPlatformNotFound   = errors.New("platform entry not found on submission")
	ErrInvalidRequest     = errors.New("invalid submission request")
	ErrForbidden          = errors.New("caller lacks the required role")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrCaptionLocked      = errors.New("caption cannot change after a platform has posted")
)
