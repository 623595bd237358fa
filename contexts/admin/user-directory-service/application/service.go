package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strconv"
	"strings"
	"time"

	domainerrors "clipcast/contexts/admin/user-directory-service/domain/errors"
	"clipcast/contexts/admin/user-directory-service/ports"
)

// socialAccountBatchSize caps each ID-list query; the backing store returns
// at most this many rows per request.
const socialAccountBatchSize = 500

// trustScoreApprovalBonus is added when an admin approves a demographic
// submission.
const trustScoreApprovalBonus = 5.0

var csvHeader = []string{
	"Username", "Full Name", "Email", "Country",
	"Total Views", "Total Earnings", "Platform", "Handle", "Followers",
}

type Service struct {
	Repo   ports.Repository
	Admins ports.AdminGate
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) UpsertProfile(ctx context.Context, actorID string, profile ports.Profile) (ports.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.Profile{}, err
	}
	if strings.TrimSpace(profile.UserID) == "" || strings.TrimSpace(profile.Username) == "" {
		return ports.Profile{}, domainerrors.ErrInvalidRequest
	}
	profile.UserID = strings.TrimSpace(profile.UserID)
	profile.UpdatedAt = s.now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}
	if err := s.Repo.UpsertProfile(ctx, profile); err != nil {
		return ports.Profile{}, err
	}
	return profile, nil
}

func (s Service) GetProfile(ctx context.Context, actorID string, userID string) (ports.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.Profile{}, err
	}
	return s.Repo.GetProfile(ctx, userID)
}

func (s Service) ListUsers(ctx context.Context, actorID string, filter ports.ProfileFilter) ([]ports.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.Repo.ListProfiles(ctx, filter)
}

func (s Service) SetSuspended(ctx context.Context, actorID string, userID string, suspended bool) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.Repo.SetSuspended(ctx, userID, suspended, s.now()); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("user suspension changed",
		"event", "user_suspension_changed",
		"module", "admin/user-directory-service",
		"layer", "application",
		"user_id", userID,
		"suspended", suspended,
	)
	return nil
}

func (s Service) UpsertSocialAccount(ctx context.Context, actorID string, account ports.SocialAccount) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if strings.TrimSpace(account.UserID) == "" || strings.TrimSpace(account.Platform) == "" {
		return domainerrors.ErrInvalidRequest
	}
	if strings.TrimSpace(account.AccountID) == "" {
		accountID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		account.AccountID = accountID
	}
	account.Platform = strings.TrimSpace(strings.ToLower(account.Platform))
	return s.Repo.UpsertSocialAccount(ctx, account)
}

// ListCreators assembles the directory view: creator profiles joined with
// their social accounts, the account lookups chunked to the batch cap.
func (s Service) ListCreators(ctx context.Context, actorID string, filter ports.ProfileFilter) ([]ports.CreatorRecord, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	filter.Role = ports.RoleCreator
	profiles, err := s.Repo.ListProfiles(ctx, filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		userIDs = append(userIDs, profile.UserID)
	}

	accountsByUser := make(map[string][]ports.SocialAccount, len(profiles))
	for start := 0; start < len(userIDs); start += socialAccountBatchSize {
		end := start + socialAccountBatchSize
		if end > len(userIDs) {
			end = len(userIDs)
		}
		batch, err := s.Repo.ListSocialAccountsByUsers(ctx, userIDs[start:end])
		if err != nil {
			return nil, err
		}
		for _, account := range batch {
			accountsByUser[account.UserID] = append(accountsByUser[account.UserID], account)
		}
	}

	records := make([]ports.CreatorRecord, 0, len(profiles))
	for _, profile := range profiles {
		records = append(records, ports.CreatorRecord{
			Profile:  profile,
			Accounts: accountsByUser[profile.UserID],
		})
	}
	return records, nil
}

// ExportCreatorsCSV renders the directory as RFC 4180 CSV. A creator with
// no social accounts contributes one row with blank account columns;
// otherwise one row per account.
func (s Service) ExportCreatorsCSV(ctx context.Context, actorID string, filter ports.ProfileFilter) ([]byte, error) {
	records, err := s.ListCreators(ctx, actorID, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, record := range records {
		base := []string{
			record.Profile.Username,
			record.Profile.FullName,
			record.Profile.Email,
			record.Profile.Country,
			strconv.FormatInt(record.Profile.TotalViews, 10),
			strconv.FormatFloat(record.Profile.TotalEarnings, 'f', 2, 64),
		}
		if len(record.Accounts) == 0 {
			if err := writer.Write(append(base, "", "", "")); err != nil {
				return nil, err
			}
			continue
		}
		for _, account := range record.Accounts {
			row := append(append([]string(nil), base...),
				account.Platform,
				account.Handle,
				strconv.FormatInt(account.Followers, 10),
			)
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s Service) SubmitDemographics(ctx context.Context, userID string, platform string, splits map[string]float64) (ports.DemographicSubmission, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(platform) == "" || len(splits) == 0 {
		return ports.DemographicSubmission{}, domainerrors.ErrInvalidRequest
	}

	submissionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.DemographicSubmission{}, err
	}
	submission := ports.DemographicSubmission{
		SubmissionID:   submissionID,
		UserID:         strings.TrimSpace(userID),
		Platform:       strings.TrimSpace(strings.ToLower(platform)),
		AudienceSplits: splits,
		Status:         ports.DemographicPending,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.CreateDemographicSubmission(ctx, submission); err != nil {
		return ports.DemographicSubmission{}, err
	}
	return submission, nil
}

func (s Service) ListPendingDemographics(ctx context.Context, actorID string) ([]ports.DemographicSubmission, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.Repo.ListDemographicSubmissions(ctx, ports.DemographicPending)
}

// ReviewDemographics settles a pending submission. Approval bumps the
// creator's trust score.
func (s Service) ReviewDemographics(ctx context.Context, actorID string, submissionID string, approve bool, notes string) (ports.DemographicSubmission, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.DemographicSubmission{}, err
	}

	submission, err := s.Repo.GetDemographicSubmission(ctx, submissionID)
	if err != nil {
		return ports.DemographicSubmission{}, err
	}
	if submission.Status != ports.DemographicPending {
		return ports.DemographicSubmission{}, domainerrors.ErrAlreadyReviewed
	}

	now := s.now()
	if approve {
		submission.Status = ports.DemographicApproved
	} else {
		submission.Status = ports.DemographicRejected
	}
	submission.ReviewedBy = strings.TrimSpace(actorID)
	submission.Notes = strings.TrimSpace(notes)
	submission.ReviewedAt = &now
	if err := s.Repo.UpdateDemographicSubmission(ctx, submission); err != nil {
		return ports.DemographicSubmission{}, err
	}

	if approve {
		if _, err := s.Repo.AdjustTrustScore(ctx, submission.UserID, trustScoreApprovalBonus, now); err != nil {
			return ports.DemographicSubmission{}, err
		}
	}

	resolveLogger(s.Logger).Info("demographic submission reviewed",
		"event", "demographics_reviewed",
		"module", "admin/user-directory-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"status", string(submission.Status),
	)
	return submission, nil
}

func (s Service) requireAdmin(ctx context.Context, actorID string) error {
	if s.Admins == nil {
		return domainerrors.ErrForbidden
	}
	isAdmin, err := s.Admins.IsAdmin(ctx, strings.TrimSpace(actorID))
	if err != nil || !isAdmin {
		return domainerrors.ErrForbidden
	}
	return nil
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
