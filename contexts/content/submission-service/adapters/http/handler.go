package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/content/submission-service/application"
	"clipcast/contexts/content/submission-service/ports"
	httptransport "clipcast/contexts/content/submission-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateSubmissionHandler(ctx context.Context, userID string, req httptransport.CreateSubmissionRequest) (httptransport.CreateSubmissionResponse, error) {
	submission, err := h.Service.CreateSubmission(ctx, ports.CreateSubmissionInput{
		CreatorID: userID,
		Source: ports.SourceRef{
			Type: ports.SourceType(req.SourceType),
			ID:   req.SourceID,
		},
		VideoURL:  req.VideoURL,
		Caption:   req.Caption,
		Platforms: req.Platforms,
	})
	if err != nil {
		return httptransport.CreateSubmissionResponse{}, err
	}
	return httptransport.CreateSubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.GetSubmissionResponse, error) {
	submission, err := h.Service.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.GetSubmissionResponse{}, err
	}
	return httptransport.GetSubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func (h Handler) ListBySourceHandler(ctx context.Context, userID string, sourceType string, sourceID string) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Service.ListBySource(ctx, userID, ports.SourceRef{
		Type: ports.SourceType(sourceType),
		ID:   sourceID,
	})
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	return httptransport.ListSubmissionsResponse{Items: mapSubmissions(items)}, nil
}

func (h Handler) ListMineHandler(ctx context.Context, userID string) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Service.ListByCreator(ctx, userID)
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	return httptransport.ListSubmissionsResponse{Items: mapSubmissions(items)}, nil
}

func (h Handler) SetPlatformStatusHandler(ctx context.Context, userID string, submissionID string, req httptransport.SetPlatformStatusRequest) (httptransport.SubmissionResponse, error) {
	submission, err := h.Service.SetPlatformStatus(ctx, userID, submissionID, req.Platform, ports.PlatformStatus(req.Status))
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func (h Handler) MoveSubmissionHandler(ctx context.Context, userID string, submissionID string, req httptransport.MoveSubmissionRequest) (httptransport.SubmissionResponse, error) {
	submission, err := h.Service.MoveSubmission(ctx, userID, submissionID, ports.PlatformStatus(req.Status))
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func (h Handler) SetPostURLHandler(ctx context.Context, userID string, submissionID string, req httptransport.SetPostURLRequest) (httptransport.SubmissionResponse, error) {
	submission, err := h.Service.SetPostURL(ctx, userID, submissionID, req.Platform, req.PostURL)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func (h Handler) UpdateCaptionHandler(ctx context.Context, userID string, submissionID string, req httptransport.UpdateCaptionRequest) (httptransport.SubmissionResponse, error) {
	submission, err := h.Service.UpdateCaption(ctx, userID, submissionID, req.Caption)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func (h Handler) SetFeedbackHandler(ctx context.Context, userID string, submissionID string, req httptransport.SetFeedbackRequest) (httptransport.SubmissionResponse, error) {
	submission, err := h.Service.SetFeedback(ctx, userID, submissionID, req.Feedback)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func (h Handler) SetPayoutAmountHandler(ctx context.Context, userID string, submissionID string, req httptransport.SetPayoutAmountRequest) (httptransport.SubmissionResponse, error) {
	submission, err := h.Service.SetPayoutAmount(ctx, userID, submissionID, req.Amount)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(submission)}, nil
}

func mapSubmission(item ports.Submission) httptransport.SubmissionDTO {
	platforms := make([]httptransport.PlatformEntryDTO, 0, len(item.Platforms))
	for _, entry := range item.Platforms {
		platforms = append(platforms, httptransport.PlatformEntryDTO{
			Platform: entry.Platform,
			Status:   string(entry.Status),
			PostURL:  entry.PostURL,
		})
	}
	return httptransport.SubmissionDTO{
		SubmissionID: item.SubmissionID,
		CreatorID:    item.CreatorID,
		SourceType:   string(item.Source.Type),
		SourceID:     item.Source.ID,
		VideoURL:     item.VideoURL,
		Caption:      item.Caption,
		Feedback:     item.Feedback,
		PayoutAmount: item.PayoutAmount,
		Status:       string(item.Status),
		Platforms:    platforms,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapSubmissions(items []ports.Submission) []httptransport.SubmissionDTO {
	result := make([]httptransport.SubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubmission(item))
	}
	return result
}
