package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/sales/pipeline-service/application"
	"clipcast/contexts/sales/pipeline-service/ports"
	httptransport "clipcast/contexts/sales/pipeline-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateDealHandler(ctx context.Context, userID string, req httptransport.CreateDealRequest) (httptransport.DealResponse, error) {
	deal, err := h.Service.CreateDeal(ctx, userID, ports.CreateDealInput{
		BrandID:      req.BrandID,
		Company:      req.Company,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Value:        req.Value,
		MonthlyValue: req.MonthlyValue,
		Notes:        req.Notes,
	})
	if err != nil {
		return httptransport.DealResponse{}, err
	}
	return httptransport.DealResponse{Deal: mapDeal(deal)}, nil
}

func (h Handler) GetDealHandler(ctx context.Context, userID string, dealID string) (httptransport.DealResponse, error) {
	deal, err := h.Service.GetDeal(ctx, userID, dealID)
	if err != nil {
		return httptransport.DealResponse{}, err
	}
	return httptransport.DealResponse{Deal: mapDeal(deal)}, nil
}

func (h Handler) ListDealsHandler(ctx context.Context, userID string, stage string, brandID string) (httptransport.ListDealsResponse, error) {
	items, err := h.Service.ListDeals(ctx, userID, ports.DealFilter{
		Stage:   ports.DealStage(stage),
		BrandID: brandID,
	})
	if err != nil {
		return httptransport.ListDealsResponse{}, err
	}
	result := make([]httptransport.DealDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapDeal(item))
	}
	return httptransport.ListDealsResponse{Items: result}, nil
}

func (h Handler) MoveStageHandler(ctx context.Context, userID string, dealID string, req httptransport.MoveStageRequest) (httptransport.DealResponse, error) {
	deal, err := h.Service.MoveStage(ctx, userID, dealID, ports.DealStage(req.Stage))
	if err != nil {
		return httptransport.DealResponse{}, err
	}
	return httptransport.DealResponse{Deal: mapDeal(deal)}, nil
}

func (h Handler) UpdateDealHandler(ctx context.Context, userID string, dealID string, req httptransport.UpdateDealRequest) (httptransport.DealResponse, error) {
	deal, err := h.Service.UpdateDeal(ctx, userID, ports.UpdateDealInput{
		DealID:       dealID,
		Company:      req.Company,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Value:        req.Value,
		MonthlyValue: req.MonthlyValue,
		Notes:        req.Notes,
	})
	if err != nil {
		return httptransport.DealResponse{}, err
	}
	return httptransport.DealResponse{Deal: mapDeal(deal)}, nil
}

func (h Handler) DeleteDealHandler(ctx context.Context, userID string, dealID string) error {
	return h.Service.DeleteDeal(ctx, userID, dealID)
}

func (h Handler) MonthlyRevenueHandler(ctx context.Context, userID string) (httptransport.MonthlyRevenueResponse, error) {
	items, err := h.Service.MonthlyRevenue(ctx, userID)
	if err != nil {
		return httptransport.MonthlyRevenueResponse{}, err
	}
	result := make([]httptransport.MonthRevenueDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.MonthRevenueDTO{
			Year:    item.Year,
			Month:   int(item.Month),
			Total:   item.Total,
			Monthly: item.Monthly,
			Deals:   item.Deals,
		})
	}
	return httptransport.MonthlyRevenueResponse{Items: result}, nil
}

func mapDeal(item ports.Deal) httptransport.DealDTO {
	dto := httptransport.DealDTO{
		DealID:       item.DealID,
		BrandID:      item.BrandID,
		Company:      item.Company,
		ContactName:  item.ContactName,
		ContactEmail: item.ContactEmail,
		Stage:        string(item.Stage),
		Value:        item.Value,
		MonthlyValue: item.MonthlyValue,
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if item.WonDate != nil {
		dto.WonDate = item.WonDate.UTC().Format(time.RFC3339)
	}
	return dto
}
