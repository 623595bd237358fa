package userdirectoryservice

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	domainerrors "clipcast/contexts/admin/user-directory-service/domain/errors"
	"clipcast/contexts/admin/user-directory-service/ports"
)

type stubAdmins struct {
	admins map[string]bool
}

func (s stubAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	return s.admins[userID], nil
}

func seedCreators() ([]ports.Profile, []ports.SocialAccount) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	profiles := []ports.Profile{
		{UserID: "creator_1", Username: "alice", FullName: "Alice One", Email: "alice@example.com", Country: "US", Role: ports.RoleCreator, TotalViews: 1200, TotalEarnings: 350.5, CreatedAt: now},
		{UserID: "creator_2", Username: "bob", FullName: "Bob Two", Email: "bob@example.com", Country: "DE", Role: ports.RoleCreator, TotalViews: 90, TotalEarnings: 0, CreatedAt: now},
		{UserID: "creator_3", Username: "carol", FullName: "Carol Three", Email: "carol@example.com", Country: "US", Role: ports.RoleCreator, TotalViews: 4000, TotalEarnings: 99.99, CreatedAt: now},
		{UserID: "brand_1", Username: "brandco", FullName: "Brand Co", Email: "ops@brand.co", Country: "US", Role: ports.RoleBrand, CreatedAt: now},
	}
	accounts := []ports.SocialAccount{
		{AccountID: "acc_1", UserID: "creator_1", Platform: "tiktok", Handle: "@alice", Followers: 10000},
		{AccountID: "acc_2", UserID: "creator_1", Platform: "instagram", Handle: "@alice.ig", Followers: 2500},
		{AccountID: "acc_3", UserID: "creator_3", Platform: "youtube", Handle: "@carol", Followers: 800},
	}
	return profiles, accounts
}

func TestDirectoryAdminGate(t *testing.T) {
	profiles, accounts := seedCreators()
	module := NewInMemoryModule(profiles, accounts, stubAdmins{admins: map[string]bool{"admin_1": true}}, nil)
	ctx := context.Background()

	if _, err := module.Service.ListUsers(ctx, "creator_1", ports.ProfileFilter{}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	items, err := module.Service.ListUsers(ctx, "admin_1", ports.ProfileFilter{})
	if err != nil {
		t.Fatalf("admin list users: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 profiles, got %d", len(items))
	}
}

func TestListCreatorsJoinsSocialAccounts(t *testing.T) {
	profiles, accounts := seedCreators()
	module := NewInMemoryModule(profiles, accounts, stubAdmins{admins: map[string]bool{"admin_1": true}}, nil)
	ctx := context.Background()

	records, err := module.Service.ListCreators(ctx, "admin_1", ports.ProfileFilter{})
	if err != nil {
		t.Fatalf("list creators: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 creator records, got %d", len(records))
	}
	byUser := make(map[string]ports.CreatorRecord, len(records))
	for _, record := range records {
		if record.Profile.Role != ports.RoleCreator {
			t.Fatalf("non-creator %q in creator directory", record.Profile.UserID)
		}
		byUser[record.Profile.UserID] = record
	}
	if got := len(byUser["creator_1"].Accounts); got != 2 {
		t.Fatalf("creator_1 accounts = %d, want 2", got)
	}
	if got := len(byUser["creator_2"].Accounts); got != 0 {
		t.Fatalf("creator_2 accounts = %d, want 0", got)
	}
}

func TestExportCreatorsCSVRowShape(t *testing.T) {
	profiles, accounts := seedCreators()
	module := NewInMemoryModule(profiles, accounts, stubAdmins{admins: map[string]bool{"admin_1": true}}, nil)
	ctx := context.Background()

	raw, err := module.Service.ExportCreatorsCSV(ctx, "admin_1", ports.ProfileFilter{})
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	wantHeader := []string{"Username", "Full Name", "Email", "Country", "Total Views", "Total Earnings", "Platform", "Handle", "Followers"}
	if len(rows) == 0 {
		t.Fatal("csv has no rows")
	}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	// 3 creators, 3 accounts total: alice has two, carol one, bob none.
	// One row per account plus one blank-account row for bob = 4 data rows.
	dataRows := rows[1:]
	if len(dataRows) != 4 {
		t.Fatalf("data rows = %d, want 4", len(dataRows))
	}

	bobRows := 0
	for _, row := range dataRows {
		if len(row) != len(wantHeader) {
			t.Fatalf("row has %d columns, want %d", len(row), len(wantHeader))
		}
		if row[0] == "bob" {
			bobRows++
			if row[6] != "" || row[7] != "" || row[8] != "" {
				t.Fatalf("accountless creator row has non-blank account columns: %v", row)
			}
			if row[5] != "0.00" {
				t.Fatalf("bob earnings = %q, want 0.00", row[5])
			}
		}
		if row[0] == "alice" && row[6] == "tiktok" {
			if row[8] != "10000" {
				t.Fatalf("alice tiktok followers = %q, want 10000", row[8])
			}
			if row[5] != "350.50" {
				t.Fatalf("alice earnings = %q, want 350.50", row[5])
			}
		}
	}
	if bobRows != 1 {
		t.Fatalf("bob rows = %d, want exactly 1", bobRows)
	}
}

func TestSuspendAndTrustScore(t *testing.T) {
	profiles, accounts := seedCreators()
	module := NewInMemoryModule(profiles, accounts, stubAdmins{admins: map[string]bool{"admin_1": true}}, nil)
	ctx := context.Background()

	if err := module.Service.SetSuspended(ctx, "admin_1", "creator_2", true); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	profile, err := module.Service.GetProfile(ctx, "admin_1", "creator_2")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !profile.Suspended {
		t.Fatal("creator_2 should be suspended")
	}

	if err := module.Service.SetSuspended(ctx, "admin_1", "missing", true); !errors.Is(err, domainerrors.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDemographicReviewFlow(t *testing.T) {
	profiles, accounts := seedCreators()
	module := NewInMemoryModule(profiles, accounts, stubAdmins{admins: map[string]bool{"admin_1": true}}, nil)
	ctx := context.Background()

	submission, err := module.Service.SubmitDemographics(ctx, "creator_1", "TikTok", map[string]float64{"US": 0.6, "DE": 0.4})
	if err != nil {
		t.Fatalf("submit demographics: %v", err)
	}
	if submission.Platform != "tiktok" {
		t.Fatalf("platform = %q, want tiktok", submission.Platform)
	}
	if submission.Status != ports.DemographicPending {
		t.Fatalf("status = %q, want pending", submission.Status)
	}

	if _, err := module.Service.ReviewDemographics(ctx, "creator_1", submission.SubmissionID, true, ""); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin review, got %v", err)
	}

	pending, err := module.Service.ListPendingDemographics(ctx, "admin_1")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}

	reviewed, err := module.Service.ReviewDemographics(ctx, "admin_1", submission.SubmissionID, true, "looks right")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != ports.DemographicApproved {
		t.Fatalf("status = %q, want approved", reviewed.Status)
	}
	if reviewed.ReviewedAt == nil {
		t.Fatal("reviewed_at not stamped")
	}

	profile, err := module.Service.GetProfile(ctx, "admin_1", "creator_1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.TrustScore != 5 {
		t.Fatalf("trust score = %v, want 5 after approval", profile.TrustScore)
	}

	if _, err := module.Service.ReviewDemographics(ctx, "admin_1", submission.SubmissionID, false, ""); !errors.Is(err, domainerrors.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}
