package blueprintservice_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	blueprintservice "clipcast/contexts/content/blueprint-service"
	domainerrors "clipcast/contexts/content/blueprint-service/domain/errors"
	httptransport "clipcast/contexts/content/blueprint-service/transport/http"
)

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

type fakeMedia struct {
	saved   map[string][]byte
	removed []string
	nextKey int
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{saved: make(map[string][]byte)}
}

func (f *fakeMedia) SaveVideo(contentType string, _ int64, body io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return "", errors.New("unsupported media type")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.nextKey++
	key := "vid-" + strings.Repeat("0", 3) + string(rune('0'+f.nextKey))
	f.saved[key] = data
	return key, nil
}

func (f *fakeMedia) PublicURL(key string) string {
	return "/media/" + key
}

func (f *fakeMedia) Remove(key string) error {
	delete(f.saved, key)
	f.removed = append(f.removed, key)
	return nil
}

func newTestModule(media *fakeMedia) blueprintservice.Module {
	roles := stubRoles{roles: map[string]string{
		"brand_1|user_owner":  "owner",
		"brand_1|user_member": "member",
	}}
	return blueprintservice.NewInMemoryModule(nil, media, roles, nil)
}

func TestBlueprintAutosavePartialFields(t *testing.T) {
	module := newTestModule(newFakeMedia())
	ctx := context.Background()

	created, err := module.Handler.CreateBlueprintHandler(ctx, "user_owner", httptransport.CreateBlueprintRequest{
		BrandID: "brand_1",
		Title:   "UGC Brief",
	})
	if err != nil {
		t.Fatalf("create blueprint failed: %v", err)
	}
	blueprintID := created.Blueprint.BlueprintID

	dos := "show the product in the first 3 seconds"
	saved, err := module.Handler.SaveFieldsHandler(ctx, "user_owner", blueprintID, httptransport.SaveFieldsRequest{
		Hooks: []string{"POV: you found the hack", "3 things nobody tells you"},
		Dos:   &dos,
	})
	if err != nil {
		t.Fatalf("autosave failed: %v", err)
	}
	if len(saved.Blueprint.Hooks) != 2 || saved.Blueprint.Dos != dos {
		t.Fatalf("unexpected saved fields: %+v", saved.Blueprint)
	}
	if saved.Blueprint.Title != "UGC Brief" {
		t.Fatalf("untouched title should survive autosave, got %q", saved.Blueprint.Title)
	}

	if _, err := module.Handler.SaveFieldsHandler(ctx, "user_member", blueprintID, httptransport.SaveFieldsRequest{
		Hooks: []string{"nope"},
	}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for member autosave, got %v", err)
	}
}

func TestBlueprintSectionLayoutValidation(t *testing.T) {
	module := newTestModule(newFakeMedia())
	ctx := context.Background()

	created, err := module.Handler.CreateBlueprintHandler(ctx, "user_owner", httptransport.CreateBlueprintRequest{
		BrandID: "brand_1",
		Title:   "Layout Brief",
	})
	if err != nil {
		t.Fatalf("create blueprint failed: %v", err)
	}
	blueprintID := created.Blueprint.BlueprintID

	reordered, err := module.Handler.SetSectionLayoutHandler(ctx, "user_owner", blueprintID, httptransport.SetSectionLayoutRequest{
		Order:  []string{"hashtags", "hooks", "personas"},
		Hidden: []string{"example_videos"},
	})
	if err != nil {
		t.Fatalf("set layout failed: %v", err)
	}
	if reordered.Blueprint.SectionOrder[0] != "hashtags" {
		t.Fatalf("expected hashtags first, got %v", reordered.Blueprint.SectionOrder)
	}

	if _, err := module.Handler.SetSectionLayoutHandler(ctx, "user_owner", blueprintID, httptransport.SetSectionLayoutRequest{
		Order: []string{"hooks", "hooks"},
	}); !errors.Is(err, domainerrors.ErrUnknownSection) {
		t.Fatalf("expected unknown section for duplicate, got %v", err)
	}

	if _, err := module.Handler.SetSectionLayoutHandler(ctx, "user_owner", blueprintID, httptransport.SetSectionLayoutRequest{
		Order: []string{"not_a_section"},
	}); !errors.Is(err, domainerrors.ErrUnknownSection) {
		t.Fatalf("expected unknown section, got %v", err)
	}
}

func TestBlueprintExampleVideoLifecycle(t *testing.T) {
	media := newFakeMedia()
	module := newTestModule(media)
	ctx := context.Background()

	created, err := module.Handler.CreateBlueprintHandler(ctx, "user_owner", httptransport.CreateBlueprintRequest{
		BrandID: "brand_1",
		Title:   "Video Brief",
	})
	if err != nil {
		t.Fatalf("create blueprint failed: %v", err)
	}
	blueprintID := created.Blueprint.BlueprintID

	withVideo, err := module.Handler.AddExampleVideoHandler(ctx, "user_owner", blueprintID, "reference clip", "video/mp4", 1024, strings.NewReader("fake-bytes"))
	if err != nil {
		t.Fatalf("add example video failed: %v", err)
	}
	if len(withVideo.Blueprint.ExampleVideos) != 1 {
		t.Fatalf("expected one example video, got %d", len(withVideo.Blueprint.ExampleVideos))
	}
	video := withVideo.Blueprint.ExampleVideos[0]
	if !strings.HasPrefix(video.URL, "/media/") {
		t.Fatalf("expected public media url, got %q", video.URL)
	}

	if _, err := module.Handler.AddExampleVideoHandler(ctx, "user_owner", blueprintID, "bad", "image/png", 10, strings.NewReader("x")); err == nil {
		t.Fatal("expected non-video upload to fail")
	}

	removed, err := module.Handler.RemoveExampleVideoHandler(ctx, "user_owner", blueprintID, video.VideoID)
	if err != nil {
		t.Fatalf("remove example video failed: %v", err)
	}
	if len(removed.Blueprint.ExampleVideos) != 0 {
		t.Fatalf("expected no example videos, got %d", len(removed.Blueprint.ExampleVideos))
	}
	if len(media.removed) != 1 {
		t.Fatalf("expected storage removal, got %v", media.removed)
	}
}
