package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	domainerrors "clipcast/contexts/sales/pipeline-service/domain/errors"
	"clipcast/contexts/sales/pipeline-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Admins ports.AdminGate
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateDeal(ctx context.Context, actorID string, input ports.CreateDealInput) (ports.Deal, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.Deal{}, err
	}
	if strings.TrimSpace(input.Company) == "" || input.Value < 0 || input.MonthlyValue < 0 {
		return ports.Deal{}, domainerrors.ErrInvalidRequest
	}

	now := s.now()
	dealID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Deal{}, err
	}
	deal := ports.Deal{
		DealID:       dealID,
		BrandID:      strings.TrimSpace(input.BrandID),
		Company:      strings.TrimSpace(input.Company),
		ContactName:  strings.TrimSpace(input.ContactName),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		Stage:        ports.StageLead,
		Value:        input.Value,
		MonthlyValue: input.MonthlyValue,
		Notes:        strings.TrimSpace(input.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateDeal(ctx, deal); err != nil {
		return ports.Deal{}, err
	}

	resolveLogger(s.Logger).Info("deal created",
		"event", "deal_created",
		"module", "sales/pipeline-service",
		"layer", "application",
		"deal_id", dealID,
		"company", deal.Company,
	)
	return deal, nil
}

func (s Service) GetDeal(ctx context.Context, actorID string, dealID string) (ports.Deal, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.Deal{}, err
	}
	return s.Repo.GetDeal(ctx, dealID)
}

func (s Service) ListDeals(ctx context.Context, actorID string, filter ports.DealFilter) ([]ports.Deal, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if filter.Stage != "" && !filter.Stage.Valid() {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListDeals(ctx, filter)
}

// MoveStage commits a column drag. Deals only move forward; won and lost
// are terminal. Entering won stamps won_date if it is not already set.
func (s Service) MoveStage(ctx context.Context, actorID string, dealID string, target ports.DealStage) (ports.Deal, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.Deal{}, err
	}
	if !target.Valid() {
		return ports.Deal{}, domainerrors.ErrInvalidRequest
	}

	deal, err := s.Repo.GetDeal(ctx, dealID)
	if err != nil {
		return ports.Deal{}, err
	}
	if deal.Stage.Terminal() || target == deal.Stage {
		return ports.Deal{}, domainerrors.ErrInvalidTransition
	}
	if !target.Terminal() && stageRank(target) < stageRank(deal.Stage) {
		return ports.Deal{}, domainerrors.ErrInvalidTransition
	}

	previous := deal.Stage
	deal.Stage = target
	deal.UpdatedAt = s.now()
	if target == ports.StageWon && deal.WonDate == nil {
		wonDate := s.now()
		deal.WonDate = &wonDate
	}
	if err := s.Repo.UpdateDeal(ctx, deal); err != nil {
		return ports.Deal{}, err
	}

	resolveLogger(s.Logger).Info("deal stage moved",
		"event", "deal_stage_moved",
		"module", "sales/pipeline-service",
		"layer", "application",
		"deal_id", deal.DealID,
		"from", string(previous),
		"to", string(target),
	)
	return deal, nil
}

func (s Service) UpdateDeal(ctx context.Context, actorID string, input ports.UpdateDealInput) (ports.Deal, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.Deal{}, err
	}
	deal, err := s.Repo.GetDeal(ctx, input.DealID)
	if err != nil {
		return ports.Deal{}, err
	}

	if input.Company != nil {
		if strings.TrimSpace(*input.Company) == "" {
			return ports.Deal{}, domainerrors.ErrInvalidRequest
		}
		deal.Company = strings.TrimSpace(*input.Company)
	}
	if input.ContactName != nil {
		deal.ContactName = strings.TrimSpace(*input.ContactName)
	}
	if input.ContactEmail != nil {
		deal.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.Value != nil {
		if *input.Value < 0 {
			return ports.Deal{}, domainerrors.ErrInvalidRequest
		}
		deal.Value = *input.Value
	}
	if input.MonthlyValue != nil {
		if *input.MonthlyValue < 0 {
			return ports.Deal{}, domainerrors.ErrInvalidRequest
		}
		deal.MonthlyValue = *input.MonthlyValue
	}
	if input.Notes != nil {
		deal.Notes = strings.TrimSpace(*input.Notes)
	}
	deal.UpdatedAt = s.now()
	if err := s.Repo.UpdateDeal(ctx, deal); err != nil {
		return ports.Deal{}, err
	}
	return deal, nil
}

func (s Service) DeleteDeal(ctx context.Context, actorID string, dealID string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.Repo.DeleteDeal(ctx, dealID)
}

// MonthlyRevenue rolls up won deals by the month they closed, newest first.
func (s Service) MonthlyRevenue(ctx context.Context, actorID string) ([]ports.MonthRevenue, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	deals, err := s.Repo.ListDeals(ctx, ports.DealFilter{Stage: ports.StageWon})
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*ports.MonthRevenue)
	for _, deal := range deals {
		if deal.WonDate == nil {
			continue
		}
		wonAt := deal.WonDate.UTC()
		key := wonAt.Format("2006-01")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &ports.MonthRevenue{Year: wonAt.Year(), Month: wonAt.Month()}
			buckets[key] = bucket
		}
		bucket.Total += deal.Value
		bucket.Monthly += deal.MonthlyValue
		bucket.Deals++
	}

	result := make([]ports.MonthRevenue, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})
	return result, nil
}

func stageRank(stage ports.DealStage) int {
	switch stage {
	case ports.StageLead:
		return 0
	case ports.StageQualified:
		return 1
	case ports.StageProposal:
		return 2
	case ports.StageNegotiation:
		return 3
	default:
		return 4
	}
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
