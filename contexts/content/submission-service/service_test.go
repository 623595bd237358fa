package submissionservice_test

import (
	"context"
	"errors"
	"testing"

	submissionservice "clipcast/contexts/content/submission-service"
	domainerrors "clipcast/contexts/content/submission-service/domain/errors"
	"clipcast/contexts/content/submission-service/ports"
	httptransport "clipcast/contexts/content/submission-service/transport/http"
)

type stubBrands struct{}

func (stubBrands) BrandID(_ context.Context, source ports.SourceRef) (string, error) {
	if !source.Valid() {
		return "", errors.New("bad source")
	}
	return "brand_1", nil
}

type stubRoles struct {
	roles map[string]string
}

func (s stubRoles) Role(_ context.Context, brandID string, userID string) (string, error) {
	role, ok := s.roles[brandID+"|"+userID]
	if !ok {
		return "", errors.New("not a member")
	}
	return role, nil
}

func newTestModule() submissionservice.Module {
	roles := stubRoles{roles: map[string]string{
		"brand_1|user_owner":  "owner",
		"brand_1|user_admin":  "admin",
		"brand_1|user_poster": "poster",
		"brand_1|user_member": "member",
	}}
	return submissionservice.NewInMemoryModule(nil, stubBrands{}, roles, nil)
}

func submitVideo(t *testing.T, module submissionservice.Module, creatorID string, platforms []string) httptransport.SubmissionDTO {
	t.Helper()
	created, err := module.Handler.CreateSubmissionHandler(context.Background(), creatorID, httptransport.CreateSubmissionRequest{
		SourceType: "campaign",
		SourceID:   "camp_1",
		VideoURL:   "/media/clip.mp4",
		Caption:    "first cut",
		Platforms:  platforms,
	})
	if err != nil {
		t.Fatalf("create submission failed: %v", err)
	}
	return created.Submission
}

func TestSubmissionReviewFlow(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	submission := submitVideo(t, module, "creator_1", []string{"tiktok"})

	if submission.Status != "pending" {
		t.Fatalf("expected pending aggregate, got %s", submission.Status)
	}

	approved, err := module.Handler.SetPlatformStatusHandler(ctx, "user_admin", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok",
		Status:   "approved",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Submission.Status != "approved" {
		t.Fatalf("expected approved aggregate, got %s", approved.Submission.Status)
	}

	ready, err := module.Handler.SetPlatformStatusHandler(ctx, "creator_1", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok",
		Status:   "ready_to_post",
	})
	if err != nil {
		t.Fatalf("ready_to_post failed: %v", err)
	}
	if ready.Submission.Status != "ready_to_post" {
		t.Fatalf("expected ready_to_post aggregate, got %s", ready.Submission.Status)
	}

	posted, err := module.Handler.SetPlatformStatusHandler(ctx, "user_poster", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok",
		Status:   "posted",
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if posted.Submission.Status != "posted" {
		t.Fatalf("expected posted aggregate, got %s", posted.Submission.Status)
	}
}

func TestSubmissionRejectOnlyFromPending(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	submission := submitVideo(t, module, "creator_1", []string{"tiktok"})

	if _, err := module.Handler.SetPlatformStatusHandler(ctx, "user_admin", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok",
		Status:   "approved",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := module.Handler.SetPlatformStatusHandler(ctx, "user_admin", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok",
		Status:   "rejected",
	}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for approved->rejected, got %v", err)
	}

	fresh := submitVideo(t, module, "creator_2", []string{"tiktok"})
	rejected, err := module.Handler.SetPlatformStatusHandler(ctx, "user_admin", fresh.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok",
		Status:   "rejected",
	})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Submission.Status != "rejected" {
		t.Fatalf("expected rejected aggregate, got %s", rejected.Submission.Status)
	}
}

func TestSubmissionPostRequiresPosterRole(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	submission := submitVideo(t, module, "creator_1", []string{"tiktok"})

	if _, err := module.Handler.SetPlatformStatusHandler(ctx, "user_admin", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok", Status: "approved",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := module.Handler.SetPlatformStatusHandler(ctx, "creator_1", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok", Status: "ready_to_post",
	}); err != nil {
		t.Fatalf("ready_to_post failed: %v", err)
	}

	if _, err := module.Handler.SetPlatformStatusHandler(ctx, "user_member", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok", Status: "posted",
	}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for member posting, got %v", err)
	}

	if _, err := module.Handler.SetPlatformStatusHandler(ctx, "user_poster", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "tiktok", Status: "posted",
	}); err != nil {
		t.Fatalf("poster should be allowed to post: %v", err)
	}
}

func TestSubmissionCaptionLocksAfterAnyPost(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	submission := submitVideo(t, module, "creator_1", []string{"tiktok", "instagram"})

	updated, err := module.Handler.UpdateCaptionHandler(ctx, "creator_1", submission.SubmissionID, httptransport.UpdateCaptionRequest{Caption: "better hook"})
	if err != nil {
		t.Fatalf("caption edit failed: %v", err)
	}
	if updated.Submission.Caption != "better hook" {
		t.Fatalf("expected caption to change, got %q", updated.Submission.Caption)
	}

	for _, status := range []string{"approved", "ready_to_post", "posted"} {
		if _, err := module.Handler.SetPlatformStatusHandler(ctx, "user_owner", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
			Platform: "tiktok", Status: status,
		}); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	if _, err := module.Handler.UpdateCaptionHandler(ctx, "creator_1", submission.SubmissionID, httptransport.UpdateCaptionRequest{Caption: "too late"}); !errors.Is(err, domainerrors.ErrCaptionLocked) {
		t.Fatalf("expected caption locked, got %v", err)
	}
}

func TestSubmissionAggregateAcrossPlatforms(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	submission := submitVideo(t, module, "creator_1", []string{"tiktok", "instagram"})

	for _, status := range []string{"approved", "ready_to_post", "posted"} {
		if _, err := module.Handler.SetPlatformStatusHandler(ctx, "user_owner", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
			Platform: "tiktok", Status: status,
		}); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	current, err := module.Handler.GetSubmissionHandler(ctx, submission.SubmissionID)
	if err != nil {
		t.Fatalf("get submission failed: %v", err)
	}
	if current.Submission.Status != "pending" {
		t.Fatalf("expected aggregate pinned to furthest-behind platform, got %s", current.Submission.Status)
	}

	skipped, err := module.Handler.SetPlatformStatusHandler(ctx, "user_owner", submission.SubmissionID, httptransport.SetPlatformStatusRequest{
		Platform: "instagram", Status: "skipped",
	})
	if err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if skipped.Submission.Status != "posted" {
		t.Fatalf("expected posted once remaining platform skipped, got %s", skipped.Submission.Status)
	}
}

func TestSubmissionPurgeForCreator(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	submitVideo(t, module, "creator_1", []string{"tiktok"})
	submitVideo(t, module, "creator_1", []string{"instagram"})
	keep := submitVideo(t, module, "creator_2", []string{"tiktok"})

	if err := module.Service.PurgeForCreator(ctx, ports.SourceRef{Type: ports.SourceCampaign, ID: "camp_1"}, "creator_1"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}

	mine, err := module.Handler.ListMineHandler(ctx, "creator_1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine.Items) != 0 {
		t.Fatalf("expected creator_1 submissions purged, got %d", len(mine.Items))
	}

	if _, err := module.Handler.GetSubmissionHandler(ctx, keep.SubmissionID); err != nil {
		t.Fatalf("unrelated submission should survive purge: %v", err)
	}
}
