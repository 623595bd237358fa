package errors

import "errors"

var (
	ErrBrandNotFound        = errors.New("brand not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrInvalidRequest       = errors.New("invalid brand request")
	ErrSlugTaken            = errors.New("brand slug already in use")
	ErrForbidden            = errors.New("caller lacks the required brand role")
	ErrMemberAlreadyExists  = errors.New("user is already a brand member")
	ErrLastOwner            = errors.New("brand must keep at least one owner")
	ErrOwnerExists          = errors.New("brand already has an owner")
	ErrSubscriptionInactive = errors.New("brand subscription is not active")
	ErrInviteInvalid        = errors.New("invite token is invalid or expired")
)
