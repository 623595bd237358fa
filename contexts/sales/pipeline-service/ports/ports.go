package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// DealStage is the pipeline column. Deals flow lead -> qualified ->
// proposal -> negotiation and settle as won or lost.
type DealStage string

const (
	StageLead        DealStage = "lead"
	StageQualified   DealStage = "qualified"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageWon         DealStage = "won"
	StageLost        DealStage = "lost"
)

func (s DealStage) Valid() bool {
	switch s {
	case StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost:
		return true
	}
	return false
}

func (s DealStage) Terminal() bool {
	return s == StageWon || s == StageLost
}

type Deal struct {
	DealID       string
	BrandID      string
	Company      string
	ContactName  string
	ContactEmail string
	Stage        DealStage
	Value        float64
	MonthlyValue float64
	Notes        string
	WonDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateDealInput struct {
	BrandID      string
	Company      string
	ContactName  string
	ContactEmail string
	Value        float64
	MonthlyValue float64
	Notes        string
}

type UpdateDealInput struct {
	DealID       string
	Company      *string
	ContactName  *string
	ContactEmail *string
	Value        *float64
	MonthlyValue *float64
	Notes        *string
}

type DealFilter struct {
	Stage   DealStage
	BrandID string
}

// MonthRevenue is one bucket of the won-revenue rollup, keyed by the month
// the deal closed.
type MonthRevenue struct {
	Year    int
	Month   time.Month
	Total   float64
	Monthly float64
	Deals   int
}

type Repository interface {
	CreateDeal(ctx context.Context, deal Deal) error
	GetDeal(ctx context.Context, dealID string) (Deal, error)
	UpdateDeal(ctx context.Context, deal Deal) error
	DeleteDeal(ctx context.Context, dealID string) error
	ListDeals(ctx context.Context, filter DealFilter) ([]Deal, error)
}

// AdminGate re-derives platform-admin status server-side.
type AdminGate interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
