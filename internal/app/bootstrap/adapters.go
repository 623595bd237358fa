package bootstrap

import (
	"context"
	"errors"

	directoryerrors "clipcast/contexts/admin/user-directory-service/domain/errors"
	directoryports "clipcast/contexts/admin/user-directory-service/ports"
	sessionports "clipcast/contexts/community/session-service/ports"
	submissionapplication "clipcast/contexts/content/submission-service/application"
	submissionerrors "clipcast/contexts/content/submission-service/domain/errors"
	submissionports "clipcast/contexts/content/submission-service/ports"
	brandapplication "clipcast/contexts/marketplace/brand-service/application"
	campaignapplication "clipcast/contexts/marketplace/campaign-service/application"
	campaignerrors "clipcast/contexts/marketplace/campaign-service/domain/errors"
	campaignports "clipcast/contexts/marketplace/campaign-service/ports"
	"clipcast/internal/platform/realtime"
)

// The adapters below are the seams between contexts. Each one narrows a
// provider context's service to the small port a consumer context declares,
// so no context imports another context's packages directly.

// brandRoles answers role lookups for every context that gates on brand
// membership. Consumers treat any error as forbidden.
type brandRoles struct {
	brands brandapplication.Service
}

func (a brandRoles) Role(ctx context.Context, brandID, userID string) (string, error) {
	role, err := a.brands.Role(ctx, brandID, userID)
	return string(role), err
}

// campaignBrands resolves a submission source back to its owning brand.
type campaignBrands struct {
	campaigns campaignapplication.Service
}

func (a campaignBrands) BrandID(ctx context.Context, source submissionports.SourceRef) (string, error) {
	switch source.Type {
	case submissionports.SourceCampaign:
		campaign, err := a.campaigns.GetCampaign(ctx, source.ID)
		if err != nil {
			return "", mapSourceLookupError(err)
		}
		return campaign.BrandID, nil
	case submissionports.SourceBoost:
		boost, err := a.campaigns.GetBoost(ctx, source.ID)
		if err != nil {
			return "", mapSourceLookupError(err)
		}
		return boost.BrandID, nil
	default:
		return "", submissionerrors.ErrInvalidRequest
	}
}

// A submission against a source that no longer exists is a bad request on
// the submission side, not an internal failure.
func mapSourceLookupError(err error) error {
	if errors.Is(err, campaignerrors.ErrCampaignNotFound) || errors.Is(err, campaignerrors.ErrBoostNotFound) {
		return submissionerrors.ErrInvalidRequest
	}
	return err
}

// submissionPurger lets the campaign context drop a removed creator's
// submissions. The field is bound after both modules exist because each
// context depends on the other here.
type submissionPurger struct {
	submissions submissionapplication.Service
}

func (a *submissionPurger) PurgeForCreator(ctx context.Context, source campaignports.SourceRef, creatorID string) error {
	return a.submissions.PurgeForCreator(ctx, submissionports.SourceRef{
		Type: submissionports.SourceType(source.Type),
		ID:   source.ID,
	}, creatorID)
}

// conversationPublisher fans message events out over the websocket hub.
type conversationPublisher struct {
	hub *realtime.Hub
}

func (p conversationPublisher) Publish(ctx context.Context, conversationID string, eventType string, payload []byte) {
	p.hub.Publish(ctx, realtime.Event{
		Type:           eventType,
		ConversationID: conversationID,
		Payload:        payload,
	})
}

// profileParticipants resolves the buyer/seller selections embedded in
// session responses from the user directory.
type profileParticipants struct {
	profiles directoryports.Repository
}

func (d profileParticipants) Participant(ctx context.Context, userID string) (sessionports.Participant, error) {
	profile, err := d.profiles.GetProfile(ctx, userID)
	if err != nil {
		return sessionports.Participant{}, err
	}
	return sessionports.Participant{
		UserID:   profile.UserID,
		Username: profile.Username,
		FullName: profile.FullName,
	}, nil
}

// profileAdminGate derives platform-admin status from the directory profile.
// An unknown caller is simply not an admin.
type profileAdminGate struct {
	profiles directoryports.Repository
}

func (g profileAdminGate) IsAdmin(ctx context.Context, userID string) (bool, error) {
	profile, err := g.profiles.GetProfile(ctx, userID)
	if errors.Is(err, directoryerrors.ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.Role == directoryports.RoleAdmin, nil
}
