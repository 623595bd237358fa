package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/marketplace/brand-service/application"
	"clipcast/contexts/marketplace/brand-service/ports"
	httptransport "clipcast/contexts/marketplace/brand-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateBrandHandler(ctx context.Context, userID string, req httptransport.CreateBrandRequest) (httptransport.CreateBrandResponse, error) {
	brand, err := h.Service.CreateBrand(ctx, ports.CreateBrandInput{
		Name:    req.Name,
		Slug:    req.Slug,
		OwnerID: userID,
	})
	if err != nil {
		return httptransport.CreateBrandResponse{}, err
	}
	return httptransport.CreateBrandResponse{Brand: mapBrand(brand)}, nil
}

func (h Handler) GetBrandHandler(ctx context.Context, brandID string) (httptransport.GetBrandResponse, error) {
	brand, err := h.Service.GetBrand(ctx, brandID)
	if err != nil {
		return httptransport.GetBrandResponse{}, err
	}
	return httptransport.GetBrandResponse{Brand: mapBrand(brand)}, nil
}

func (h Handler) GetBrandBySlugHandler(ctx context.Context, slug string) (httptransport.GetBrandResponse, error) {
	brand, err := h.Service.GetBrandBySlug(ctx, slug)
	if err != nil {
		return httptransport.GetBrandResponse{}, err
	}
	return httptransport.GetBrandResponse{Brand: mapBrand(brand)}, nil
}

func (h Handler) ListBrandsHandler(ctx context.Context, userID string) (httptransport.ListBrandsResponse, error) {
	items, err := h.Service.ListBrandsForUser(ctx, userID)
	if err != nil {
		return httptransport.ListBrandsResponse{}, err
	}
	result := make([]httptransport.BrandDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapBrand(item))
	}
	return httptransport.ListBrandsResponse{Items: result}, nil
}

func (h Handler) UpdateBrandHandler(ctx context.Context, userID string, brandID string, req httptransport.UpdateBrandRequest) (httptransport.UpdateBrandResponse, error) {
	brand, err := h.Service.UpdateBrand(ctx, userID, ports.UpdateBrandInput{
		BrandID:             brandID,
		Name:                req.Name,
		LogoURL:             req.LogoURL,
		BannerURL:           req.BannerURL,
		PayoutHoldingDays:   req.PayoutHoldingDays,
		PayoutMinimumAmount: req.PayoutMinimumAmount,
	})
	if err != nil {
		return httptransport.UpdateBrandResponse{}, err
	}
	return httptransport.UpdateBrandResponse{Brand: mapBrand(brand)}, nil
}

func (h Handler) ListMembersHandler(ctx context.Context, userID string, brandID string) (httptransport.ListMembersResponse, error) {
	items, err := h.Service.ListMembers(ctx, userID, brandID)
	if err != nil {
		return httptransport.ListMembersResponse{}, err
	}
	result := make([]httptransport.MemberDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapMember(item))
	}
	return httptransport.ListMembersResponse{Items: result}, nil
}

func (h Handler) CreateInviteHandler(ctx context.Context, userID string, brandID string, req httptransport.CreateInviteRequest) (httptransport.CreateInviteResponse, error) {
	token, err := h.Service.CreateInvite(ctx, userID, brandID, ports.Role(req.Role))
	if err != nil {
		return httptransport.CreateInviteResponse{}, err
	}
	return httptransport.CreateInviteResponse{Token: token}, nil
}

func (h Handler) JoinBrandHandler(ctx context.Context, userID string, brandID string, req httptransport.JoinBrandRequest) (httptransport.JoinBrandResponse, error) {
	member, err := h.Service.JoinWithInvite(ctx, userID, brandID, req.Token)
	if err != nil {
		return httptransport.JoinBrandResponse{}, err
	}
	return httptransport.JoinBrandResponse{Member: mapMember(member)}, nil
}

func (h Handler) ChangeMemberRoleHandler(ctx context.Context, actorID string, brandID string, userID string, req httptransport.ChangeMemberRoleRequest) (httptransport.ChangeMemberRoleResponse, error) {
	member, err := h.Service.ChangeMemberRole(ctx, actorID, brandID, userID, ports.Role(req.Role))
	if err != nil {
		return httptransport.ChangeMemberRoleResponse{}, err
	}
	return httptransport.ChangeMemberRoleResponse{Member: mapMember(member)}, nil
}

func (h Handler) RemoveMemberHandler(ctx context.Context, actorID string, brandID string, userID string) error {
	return h.Service.RemoveMember(ctx, actorID, brandID, userID)
}

func mapBrand(item ports.Brand) httptransport.BrandDTO {
	dto := httptransport.BrandDTO{
		BrandID:             item.BrandID,
		Name:                item.Name,
		Slug:                item.Slug,
		LogoURL:             item.LogoURL,
		BannerURL:           item.BannerURL,
		Verified:            item.Verified,
		SubscriptionStatus:  string(item.SubscriptionStatus),
		SubscriptionPlan:    item.SubscriptionPlan,
		PayoutHoldingDays:   item.PayoutHoldingDays,
		PayoutMinimumAmount: item.PayoutMinimumAmount,
		CreatedAt:           item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.SubscriptionExpiresAt != nil {
		dto.SubscriptionExpiresAt = item.SubscriptionExpiresAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func mapMember(item ports.Member) httptransport.MemberDTO {
	return httptransport.MemberDTO{
		MemberID:  item.MemberID,
		BrandID:   item.BrandID,
		UserID:    item.UserID,
		Role:      string(item.Role),
		InvitedBy: item.InvitedBy,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
