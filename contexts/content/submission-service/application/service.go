package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/content/submission-service/domain/errors"
	"clipcast/contexts/content/submission-service/ports"
	"clipcast/internal/shared/events"
)

// StatusTopic is the bus topic the outbox relay publishes status changes to.
const StatusTopic = "content.submission.status"

type Service struct {
	Repo   ports.Repository
	Outbox ports.OutboxRepository
	Brands ports.BrandResolver
	Roles  ports.RoleResolver
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateSubmission(ctx context.Context, input ports.CreateSubmissionInput) (ports.Submission, error) {
	if strings.TrimSpace(input.CreatorID) == "" || !input.Source.Valid() || strings.TrimSpace(input.VideoURL) == "" || len(input.Platforms) == 0 {
		return ports.Submission{}, domainerrors.ErrInvalidRequest
	}

	now := s.now()
	submissionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Submission{}, err
	}

	entries := make([]ports.PlatformEntry, 0, len(input.Platforms))
	for _, platform := range input.Platforms {
		platform = strings.TrimSpace(strings.ToLower(platform))
		if platform == "" {
			return ports.Submission{}, domainerrors.ErrInvalidRequest
		}
		entries = append(entries, ports.PlatformEntry{
			Platform: platform,
			Status:   ports.StatusPending,
		})
	}

	submission := ports.Submission{
		SubmissionID: submissionID,
		CreatorID:    strings.TrimSpace(input.CreatorID),
		Source:       input.Source,
		VideoURL:     strings.TrimSpace(input.VideoURL),
		Caption:      strings.TrimSpace(input.Caption),
		Platforms:    entries,
		Status:       ports.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateSubmission(ctx, submission); err != nil {
		return ports.Submission{}, err
	}

	resolveLogger(s.Logger).Info("submission created",
		"event", "submission_created",
		"module", "content/submission-service",
		"layer", "application",
		"submission_id", submissionID,
		"creator_id", submission.CreatorID,
		"source_type", string(input.Source.Type),
		"source_id", input.Source.ID,
	)
	return submission, nil
}

func (s Service) GetSubmission(ctx context.Context, submissionID string) (ports.Submission, error) {
	if strings.TrimSpace(submissionID) == "" {
		return ports.Submission{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetSubmission(ctx, submissionID)
}

func (s Service) ListBySource(ctx context.Context, actorID string, source ports.SourceRef) ([]ports.Submission, error) {
	if !source.Valid() {
		return nil, domainerrors.ErrInvalidRequest
	}
	if err := s.requireBrandRole(ctx, source, actorID, "owner", "admin", "poster", "member"); err != nil {
		return nil, err
	}
	return s.Repo.ListBySource(ctx, source)
}

func (s Service) ListByCreator(ctx context.Context, creatorID string) ([]ports.Submission, error) {
	if strings.TrimSpace(creatorID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListByCreator(ctx, strings.TrimSpace(creatorID))
}

// SetPlatformStatus is the point update behind a single platform chip. The
// submission's aggregate status is recomputed from the entries on every
// write.
func (s Service) SetPlatformStatus(ctx context.Context, actorID string, submissionID string, platform string, target ports.PlatformStatus) (ports.Submission, error) {
	submission, err := s.Repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.Submission{}, err
	}

	platform = strings.TrimSpace(strings.ToLower(platform))
	index := -1
	for i, entry := range submission.Platforms {
		if entry.Platform == platform {
			index = i
			break
		}
	}
	if index == -1 {
		return ports.Submission{}, domainerrors.ErrPlatformNotFound
	}

	current := submission.Platforms[index].Status
	if !allowedTransition(current, target) {
		return ports.Submission{}, domainerrors.ErrInvalidTransition
	}
	if err := s.requireTransitionRole(ctx, submission, actorID, target); err != nil {
		return ports.Submission{}, err
	}

	submission.Platforms[index].Status = target
	submission.Status = deriveStatus(submission.Platforms)
	submission.UpdatedAt = s.now()
	if err := s.Repo.UpdateSubmission(ctx, submission); err != nil {
		return ports.Submission{}, err
	}

	resolveLogger(s.Logger).Info("platform status changed",
		"event", "submission_platform_status_changed",
		"module", "content/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"platform", platform,
		"from", string(current),
		"to", string(target),
		"aggregate", string(submission.Status),
	)
	s.appendStatusEvent(ctx, submission)
	return submission, nil
}

// MoveSubmission commits a card drag. Every platform entry sitting in the
// card's current column moves together; entries already past it stay put.
func (s Service) MoveSubmission(ctx context.Context, actorID string, submissionID string, target ports.PlatformStatus) (ports.Submission, error) {
	submission, err := s.Repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.Submission{}, err
	}
	if !allowedTransition(submission.Status, target) {
		return ports.Submission{}, domainerrors.ErrInvalidTransition
	}
	if err := s.requireTransitionRole(ctx, submission, actorID, target); err != nil {
		return ports.Submission{}, err
	}

	moved := false
	for i, entry := range submission.Platforms {
		if entry.Status == submission.Status {
			submission.Platforms[i].Status = target
			moved = true
		}
	}
	if !moved {
		return ports.Submission{}, domainerrors.ErrInvalidTransition
	}

	submission.Status = deriveStatus(submission.Platforms)
	submission.UpdatedAt = s.now()
	if err := s.Repo.UpdateSubmission(ctx, submission); err != nil {
		return ports.Submission{}, err
	}
	s.appendStatusEvent(ctx, submission)
	return submission, nil
}

func (s Service) SetPostURL(ctx context.Context, actorID string, submissionID string, platform string, postURL string) (ports.Submission, error) {
	submission, err := s.Repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.Submission{}, err
	}
	if err := s.requireTransitionRole(ctx, submission, actorID, ports.StatusPosted); err != nil {
		return ports.Submission{}, err
	}

	platform = strings.TrimSpace(strings.ToLower(platform))
	index := -1
	for i, entry := range submission.Platforms {
		if entry.Platform == platform {
			index = i
			break
		}
	}
	if index == -1 {
		return ports.Submission{}, domainerrors.ErrPlatformNotFound
	}

	submission.Platforms[index].PostURL = strings.TrimSpace(postURL)
	submission.UpdatedAt = s.now()
	if err := s.Repo.UpdateSubmission(ctx, submission); err != nil {
		return ports.Submission{}, err
	}
	return submission, nil
}

// UpdateCaption locks as soon as any platform has posted.
func (s Service) UpdateCaption(ctx context.Context, creatorID string, submissionID string, caption string) (ports.Submission, error) {
	submission, err := s.Repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.Submission{}, err
	}
	if submission.CreatorID != strings.TrimSpace(creatorID) {
		return ports.Submission{}, domainerrors.ErrForbidden
	}
	if submission.PostedAnywhere() {
		return ports.Submission{}, domainerrors.ErrCaptionLocked
	}

	submission.Caption = strings.TrimSpace(caption)
	submission.UpdatedAt = s.now()
	if err := s.Repo.UpdateSubmission(ctx, submission); err != nil {
		return ports.Submission{}, err
	}
	return submission, nil
}

func (s Service) SetFeedback(ctx context.Context, actorID string, submissionID string, feedback string) (ports.Submission, error) {
	submission, err := s.Repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.Submission{}, err
	}
	if err := s.requireBrandRole(ctx, submission.Source, actorID, "owner", "admin"); err != nil {
		return ports.Submission{}, err
	}

	submission.Feedback = strings.TrimSpace(feedback)
	submission.UpdatedAt = s.now()
	if err := s.Repo.UpdateSubmission(ctx, submission); err != nil {
		return ports.Submission{}, err
	}
	return submission, nil
}

func (s Service) SetPayoutAmount(ctx context.Context, actorID string, submissionID string, amount float64) (ports.Submission, error) {
	if amount < 0 {
		return ports.Submission{}, domainerrors.ErrInvalidRequest
	}
	submission, err := s.Repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.Submission{}, err
	}
	if err := s.requireBrandRole(ctx, submission.Source, actorID, "owner", "admin"); err != nil {
		return ports.Submission{}, err
	}

	submission.PayoutAmount = amount
	submission.UpdatedAt = s.now()
	if err := s.Repo.UpdateSubmission(ctx, submission); err != nil {
		return ports.Submission{}, err
	}
	return submission, nil
}

// PurgeForCreator removes all of a creator's submissions for a campaign or
// boost. Callers are expected to have authorized the removal already.
func (s Service) PurgeForCreator(ctx context.Context, source ports.SourceRef, creatorID string) error {
	if !source.Valid() || strings.TrimSpace(creatorID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	removed, err := s.Repo.DeleteForCreator(ctx, source, strings.TrimSpace(creatorID))
	if err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("submissions purged",
		"event", "submissions_purged",
		"module", "content/submission-service",
		"layer", "application",
		"source_type", string(source.Type),
		"source_id", source.ID,
		"creator_id", creatorID,
		"removed", removed,
	)
	return nil
}

// allowedTransition encodes the review flow. Rejection is only reachable
// from pending; skipped waives a platform that has not posted yet.
func allowedTransition(from ports.PlatformStatus, to ports.PlatformStatus) bool {
	switch from {
	case ports.StatusPending:
		return to == ports.StatusApproved || to == ports.StatusRejected || to == ports.StatusSkipped
	case ports.StatusApproved:
		return to == ports.StatusReadyToPost || to == ports.StatusSkipped
	case ports.StatusReadyToPost:
		return to == ports.StatusPosted || to == ports.StatusSkipped
	default:
		return false
	}
}

func (s Service) requireTransitionRole(ctx context.Context, submission ports.Submission, actorID string, target ports.PlatformStatus) error {
	switch target {
	case ports.StatusPosted:
		return s.requireBrandRole(ctx, submission.Source, actorID, "owner", "admin", "poster")
	case ports.StatusReadyToPost:
		if submission.CreatorID == strings.TrimSpace(actorID) {
			return nil
		}
		return s.requireBrandRole(ctx, submission.Source, actorID, "owner", "admin")
	default:
		return s.requireBrandRole(ctx, submission.Source, actorID, "owner", "admin")
	}
}

func (s Service) requireBrandRole(ctx context.Context, source ports.SourceRef, actorID string, allowed ...string) error {
	if s.Brands == nil || s.Roles == nil {
		return domainerrors.ErrForbidden
	}
	brandID, err := s.Brands.BrandID(ctx, source)
	if err != nil {
		return err
	}
	role, err := s.Roles.Role(ctx, brandID, strings.TrimSpace(actorID))
	if err != nil {
		return domainerrors.ErrForbidden
	}
	for _, candidate := range allowed {
		if role == candidate {
			return nil
		}
	}
	return domainerrors.ErrForbidden
}

// deriveStatus computes the aggregate column from the platform entries.
// Posted requires every entry to be posted or skipped with at least one
// posted; a submission whose entries are all rejected or skipped collapses
// to rejected; otherwise the furthest-behind live entry wins.
func deriveStatus(entries []ports.PlatformEntry) ports.PlatformStatus {
	if len(entries) == 0 {
		return ports.StatusPending
	}

	allDone := true
	anyPosted := false
	anyLive := false
	lowest := ports.StatusPosted
	for _, entry := range entries {
		switch entry.Status {
		case ports.StatusPosted:
			anyPosted = true
		case ports.StatusSkipped, ports.StatusRejected:
		default:
			allDone = false
			anyLive = true
			if statusRank(entry.Status) < statusRank(lowest) {
				lowest = entry.Status
			}
		}
	}

	if allDone {
		if anyPosted {
			return ports.StatusPosted
		}
		return ports.StatusRejected
	}
	if !anyLive {
		return ports.StatusRejected
	}
	return lowest
}

func statusRank(status ports.PlatformStatus) int {
	switch status {
	case ports.StatusPending:
		return 0
	case ports.StatusApproved:
		return 1
	case ports.StatusReadyToPost:
		return 2
	case ports.StatusPosted:
		return 3
	default:
		return 0
	}
}

// appendStatusEvent writes an outbox row for the relay. A failed append is
// logged and does not undo the committed status change.
func (s Service) appendStatusEvent(ctx context.Context, submission ports.Submission) {
	if s.Outbox == nil {
		return
	}

	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      "submission.status_changed",
		SourceService:  "content/submission-service",
		OccurredAtUTC:  s.now(),
		EntityType:     "video_submission",
		EntityID:       submission.SubmissionID,
		PayloadVersion: 1,
		Payload: map[string]any{
			"submission_id": submission.SubmissionID,
			"creator_id":    submission.CreatorID,
			"source_type":   string(submission.Source.Type),
			"source_id":     submission.Source.ID,
			"status":        string(submission.Status),
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}

	outboxID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return
	}
	message := ports.OutboxMessage{
		OutboxID:  outboxID,
		Topic:     StatusTopic,
		Payload:   payload,
		CreatedAt: s.now(),
	}
	if err := s.Outbox.AppendOutbox(ctx, message); err != nil {
		resolveLogger(s.Logger).Warn("outbox append failed",
			"event", "submission_outbox_append_failed",
			"module", "content/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
