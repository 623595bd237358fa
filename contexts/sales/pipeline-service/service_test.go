package pipelineservice_test

import (
	"context"
	"errors"
	"testing"

	pipelineservice "clipcast/contexts/sales/pipeline-service"
	domainerrors "clipcast/contexts/sales/pipeline-service/domain/errors"
	httptransport "clipcast/contexts/sales/pipeline-service/transport/http"
)

type stubAdmins struct {
	admins map[string]bool
}

func (s stubAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	return s.admins[userID], nil
}

func newTestModule() pipelineservice.Module {
	return pipelineservice.NewInMemoryModule(nil, stubAdmins{admins: map[string]bool{"admin_1": true}}, nil)
}

func createDeal(t *testing.T, module pipelineservice.Module, company string, value float64, monthly float64) httptransport.DealDTO {
	t.Helper()
	created, err := module.Handler.CreateDealHandler(context.Background(), "admin_1", httptransport.CreateDealRequest{
		Company:      company,
		Value:        value,
		MonthlyValue: monthly,
	})
	if err != nil {
		t.Fatalf("create deal failed: %v", err)
	}
	return created.Deal
}

func TestPipelineAdminOnly(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	if _, err := module.Handler.CreateDealHandler(ctx, "user_random", httptransport.CreateDealRequest{Company: "Nope Inc"}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
	if _, err := module.Handler.ListDealsHandler(ctx, "user_random", "", ""); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden list for non-admin, got %v", err)
	}
}

func TestPipelineStageMachine(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	deal := createDeal(t, module, "Acme Corp", 12000, 1000)

	if deal.Stage != "lead" {
		t.Fatalf("expected new deal in lead, got %s", deal.Stage)
	}

	moved, err := module.Handler.MoveStageHandler(ctx, "admin_1", deal.DealID, httptransport.MoveStageRequest{Stage: "qualified"})
	if err != nil {
		t.Fatalf("move to qualified failed: %v", err)
	}
	if moved.Deal.Stage != "qualified" {
		t.Fatalf("expected qualified, got %s", moved.Deal.Stage)
	}

	if _, err := module.Handler.MoveStageHandler(ctx, "admin_1", deal.DealID, httptransport.MoveStageRequest{Stage: "lead"}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected backward move rejected, got %v", err)
	}

	lost, err := module.Handler.MoveStageHandler(ctx, "admin_1", deal.DealID, httptransport.MoveStageRequest{Stage: "lost"})
	if err != nil {
		t.Fatalf("move to lost failed: %v", err)
	}
	if lost.Deal.Stage != "lost" {
		t.Fatalf("expected lost, got %s", lost.Deal.Stage)
	}

	if _, err := module.Handler.MoveStageHandler(ctx, "admin_1", deal.DealID, httptransport.MoveStageRequest{Stage: "won"}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected terminal stage to be frozen, got %v", err)
	}
}

func TestPipelineWonStampsDate(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()
	deal := createDeal(t, module, "Winner LLC", 30000, 2500)

	won, err := module.Handler.MoveStageHandler(ctx, "admin_1", deal.DealID, httptransport.MoveStageRequest{Stage: "won"})
	if err != nil {
		t.Fatalf("move to won failed: %v", err)
	}
	if won.Deal.WonDate == "" {
		t.Fatal("expected won_date to be stamped on entering won")
	}
}

func TestPipelineMonthlyRevenueRollup(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	first := createDeal(t, module, "First Co", 10000, 800)
	second := createDeal(t, module, "Second Co", 5000, 400)
	createDeal(t, module, "Open Co", 99999, 100)

	for _, dealID := range []string{first.DealID, second.DealID} {
		if _, err := module.Handler.MoveStageHandler(ctx, "admin_1", dealID, httptransport.MoveStageRequest{Stage: "won"}); err != nil {
			t.Fatalf("move to won failed: %v", err)
		}
	}

	revenue, err := module.Handler.MonthlyRevenueHandler(ctx, "admin_1")
	if err != nil {
		t.Fatalf("monthly revenue failed: %v", err)
	}
	if len(revenue.Items) != 1 {
		t.Fatalf("expected one month bucket, got %d", len(revenue.Items))
	}
	bucket := revenue.Items[0]
	if bucket.Total != 15000 || bucket.Monthly != 1200 || bucket.Deals != 2 {
		t.Fatalf("unexpected rollup: %+v", bucket)
	}
}
