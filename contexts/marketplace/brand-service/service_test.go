package brandservice_test

import (
	"context"
	"errors"
	"testing"

	brandservice "clipcast/contexts/marketplace/brand-service"
	domainerrors "clipcast/contexts/marketplace/brand-service/domain/errors"
	"clipcast/contexts/marketplace/brand-service/ports"
	httptransport "clipcast/contexts/marketplace/brand-service/transport/http"
)

func TestBrandServiceCreateAndFetch(t *testing.T) {
	module := brandservice.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateBrandHandler(ctx, "user_owner", httptransport.CreateBrandRequest{
		Name: "Acme Media",
		Slug: "acme-media",
	})
	if err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	if created.Brand.BrandID == "" {
		t.Fatal("expected brand id to be assigned")
	}

	fetched, err := module.Handler.GetBrandBySlugHandler(ctx, "acme-media")
	if err != nil {
		t.Fatalf("get brand by slug failed: %v", err)
	}
	if fetched.Brand.BrandID != created.Brand.BrandID {
		t.Fatalf("expected same brand, got %s and %s", fetched.Brand.BrandID, created.Brand.BrandID)
	}

	if _, err := module.Handler.CreateBrandHandler(ctx, "user_other", httptransport.CreateBrandRequest{
		Name: "Acme Clone",
		Slug: "acme-media",
	}); !errors.Is(err, domainerrors.ErrSlugTaken) {
		t.Fatalf("expected slug taken, got %v", err)
	}
}

func TestBrandServiceInviteJoinFlow(t *testing.T) {
	module := brandservice.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateBrandHandler(ctx, "user_owner", httptransport.CreateBrandRequest{
		Name: "Studio North",
		Slug: "studio-north",
	})
	if err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	brandID := created.Brand.BrandID

	invite, err := module.Handler.CreateInviteHandler(ctx, "user_owner", brandID, httptransport.CreateInviteRequest{Role: "poster"})
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}
	if invite.Token == "" {
		t.Fatal("expected invite token")
	}

	joined, err := module.Handler.JoinBrandHandler(ctx, "user_new", brandID, httptransport.JoinBrandRequest{Token: invite.Token})
	if err != nil {
		t.Fatalf("join brand failed: %v", err)
	}
	if joined.Member.Role != "poster" {
		t.Fatalf("expected poster role, got %s", joined.Member.Role)
	}

	if _, err := module.Handler.JoinBrandHandler(ctx, "user_late", brandID, httptransport.JoinBrandRequest{Token: "bogus-token"}); !errors.Is(err, domainerrors.ErrInviteInvalid) {
		t.Fatalf("expected invalid invite, got %v", err)
	}
}

func TestBrandServiceRoleChangesGuardLastOwner(t *testing.T) {
	module := brandservice.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateBrandHandler(ctx, "user_owner", httptransport.CreateBrandRequest{
		Name: "Solo Brand",
		Slug: "solo-brand",
	})
	if err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	brandID := created.Brand.BrandID

	if _, err := module.Handler.ChangeMemberRoleHandler(ctx, "user_owner", brandID, "user_owner", httptransport.ChangeMemberRoleRequest{Role: "member"}); !errors.Is(err, domainerrors.ErrLastOwner) {
		t.Fatalf("expected last owner guard, got %v", err)
	}

	module.Store.SeedMember(ports.Member{
		MemberID: "mem_002",
		BrandID:  brandID,
		UserID:   "user_second",
		Role:     ports.RoleMember,
	})

	changed, err := module.Handler.ChangeMemberRoleHandler(ctx, "user_owner", brandID, "user_second", httptransport.ChangeMemberRoleRequest{Role: "admin"})
	if err != nil {
		t.Fatalf("change role failed: %v", err)
	}
	if changed.Member.Role != "admin" {
		t.Fatalf("expected admin role, got %s", changed.Member.Role)
	}

	if _, err := module.Handler.ChangeMemberRoleHandler(ctx, "user_second", brandID, "user_owner", httptransport.ChangeMemberRoleRequest{Role: "member"}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner actor, got %v", err)
	}

	// Exactly one owner: promoting a second member to owner is refused.
	if _, err := module.Handler.ChangeMemberRoleHandler(ctx, "user_owner", brandID, "user_second", httptransport.ChangeMemberRoleRequest{Role: "owner"}); !errors.Is(err, domainerrors.ErrOwnerExists) {
		t.Fatalf("expected owner exists guard, got %v", err)
	}
}

func TestBrandServiceUpdateRequiresRole(t *testing.T) {
	module := brandservice.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateBrandHandler(ctx, "user_owner", httptransport.CreateBrandRequest{
		Name: "Edit Brand",
		Slug: "edit-brand",
	})
	if err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	brandID := created.Brand.BrandID

	name := "Edit Brand Renamed"
	if _, err := module.Handler.UpdateBrandHandler(ctx, "user_random", brandID, httptransport.UpdateBrandRequest{Name: &name}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for outsider, got %v", err)
	}

	updated, err := module.Handler.UpdateBrandHandler(ctx, "user_owner", brandID, httptransport.UpdateBrandRequest{Name: &name})
	if err != nil {
		t.Fatalf("update brand failed: %v", err)
	}
	if updated.Brand.Name != name {
		t.Fatalf("expected renamed brand, got %s", updated.Brand.Name)
	}
}
