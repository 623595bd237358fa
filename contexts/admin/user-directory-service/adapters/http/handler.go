package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/admin/user-directory-service/application"
	"clipcast/contexts/admin/user-directory-service/ports"
	httptransport "clipcast/contexts/admin/user-directory-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) UpsertProfileHandler(ctx context.Context, userID string, req httptransport.UpsertProfileRequest) (httptransport.ProfileResponse, error) {
	profile, err := h.Service.UpsertProfile(ctx, userID, ports.Profile{
		UserID:        req.UserID,
		Username:      req.Username,
		FullName:      req.FullName,
		Email:         req.Email,
		Country:       req.Country,
		Role:          ports.AccountRole(req.Role),
		TotalViews:    req.TotalViews,
		TotalEarnings: req.TotalEarnings,
	})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{Profile: mapProfile(profile)}, nil
}

func (h Handler) GetProfileHandler(ctx context.Context, actorID string, userID string) (httptransport.ProfileResponse, error) {
	profile, err := h.Service.GetProfile(ctx, actorID, userID)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{Profile: mapProfile(profile)}, nil
}

func (h Handler) ListUsersHandler(ctx context.Context, actorID string, role string, country string, search string) (httptransport.ListProfilesResponse, error) {
	items, err := h.Service.ListUsers(ctx, actorID, ports.ProfileFilter{
		Role:    ports.AccountRole(role),
		Country: country,
		Search:  search,
	})
	if err != nil {
		return httptransport.ListProfilesResponse{}, err
	}
	result := make([]httptransport.ProfileDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapProfile(item))
	}
	return httptransport.ListProfilesResponse{Items: result}, nil
}

func (h Handler) ListCreatorsHandler(ctx context.Context, actorID string, country string, search string) (httptransport.ListCreatorsResponse, error) {
	records, err := h.Service.ListCreators(ctx, actorID, ports.ProfileFilter{
		Country: country,
		Search:  search,
	})
	if err != nil {
		return httptransport.ListCreatorsResponse{}, err
	}
	result := make([]httptransport.CreatorRecordDTO, 0, len(records))
	for _, record := range records {
		accounts := make([]httptransport.SocialAccountDTO, 0, len(record.Accounts))
		for _, account := range record.Accounts {
			accounts = append(accounts, httptransport.SocialAccountDTO{
				AccountID: account.AccountID,
				Platform:  account.Platform,
				Handle:    account.Handle,
				Followers: account.Followers,
			})
		}
		result = append(result, httptransport.CreatorRecordDTO{
			Profile:  mapProfile(record.Profile),
			Accounts: accounts,
		})
	}
	return httptransport.ListCreatorsResponse{Items: result}, nil
}

func (h Handler) ExportCreatorsCSVHandler(ctx context.Context, actorID string, country string, search string) ([]byte, error) {
	return h.Service.ExportCreatorsCSV(ctx, actorID, ports.ProfileFilter{
		Country: country,
		Search:  search,
	})
}

func (h Handler) SetSuspendedHandler(ctx context.Context, actorID string, userID string, req httptransport.SetSuspendedRequest) error {
	return h.Service.SetSuspended(ctx, actorID, userID, req.Suspended)
}

func (h Handler) UpsertSocialAccountHandler(ctx context.Context, actorID string, req httptransport.UpsertSocialAccountRequest) error {
	return h.Service.UpsertSocialAccount(ctx, actorID, ports.SocialAccount{
		UserID:    req.UserID,
		Platform:  req.Platform,
		Handle:    req.Handle,
		Followers: req.Followers,
	})
}

func (h Handler) SubmitDemographicsHandler(ctx context.Context, userID string, req httptransport.SubmitDemographicsRequest) (httptransport.DemographicSubmissionResponse, error) {
	submission, err := h.Service.SubmitDemographics(ctx, userID, req.Platform, req.Splits)
	if err != nil {
		return httptransport.DemographicSubmissionResponse{}, err
	}
	return httptransport.DemographicSubmissionResponse{Submission: mapDemographic(submission)}, nil
}

func (h Handler) ListPendingDemographicsHandler(ctx context.Context, actorID string) (httptransport.ListDemographicsResponse, error) {
	items, err := h.Service.ListPendingDemographics(ctx, actorID)
	if err != nil {
		return httptransport.ListDemographicsResponse{}, err
	}
	result := make([]httptransport.DemographicSubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapDemographic(item))
	}
	return httptransport.ListDemographicsResponse{Items: result}, nil
}

func (h Handler) ReviewDemographicsHandler(ctx context.Context, actorID string, submissionID string, req httptransport.ReviewDemographicsRequest) (httptransport.DemographicSubmissionResponse, error) {
	submission, err := h.Service.ReviewDemographics(ctx, actorID, submissionID, req.Approve, req.Notes)
	if err != nil {
		return httptransport.DemographicSubmissionResponse{}, err
	}
	return httptransport.DemographicSubmissionResponse{Submission: mapDemographic(submission)}, nil
}

func mapProfile(item ports.Profile) httptransport.ProfileDTO {
	return httptransport.ProfileDTO{
		UserID:        item.UserID,
		Username:      item.Username,
		FullName:      item.FullName,
		Email:         item.Email,
		Country:       item.Country,
		Role:          string(item.Role),
		TrustScore:    item.TrustScore,
		TotalViews:    item.TotalViews,
		TotalEarnings: item.TotalEarnings,
		Suspended:     item.Suspended,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapDemographic(item ports.DemographicSubmission) httptransport.DemographicSubmissionDTO {
	dto := httptransport.DemographicSubmissionDTO{
		SubmissionID: item.SubmissionID,
		UserID:       item.UserID,
		Platform:     item.Platform,
		Splits:       item.AudienceSplits,
		Status:       string(item.Status),
		ReviewedBy:   item.ReviewedBy,
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.ReviewedAt != nil {
		dto.ReviewedAt = item.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
