package errors

import "errors"

var (
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrBoostNotFound         = errors.New("boost not found")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrInvalidRequest        = errors.New("invalid campaign request")
	ErrForbidden             = errors.New("caller lacks the required role")
	ErrCampaignNotEditable   = errors.New("campaign cannot be edited in current state")
	ErrAlreadyApplied        = errors.New("creator already applied to this boost")
	ErrApplicationNotPending = errors.New("application is not in applied state")
	ErrSourceNotActive       = errors.New("campaign or boost is not active")
	ErrParticipantNotFound   = errors.New("creator is not part of this campaign")
	ErrParticipantExists     = errors.New("creator already joined this campaign")
)
