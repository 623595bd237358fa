package ports

import (
	"context"
	"io"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Section names a collapsible block of the brief. SectionOrder persists the
// arrangement a brand saved last.
const (
	SectionHooks         = "hooks"
	SectionPersonas      = "personas"
	SectionGuidelines    = "guidelines"
	SectionHashtags      = "hashtags"
	SectionExampleVideos = "example_videos"
)

func KnownSections() []string {
	return []string{
		SectionHooks,
		SectionPersonas,
		SectionGuidelines,
		SectionHashtags,
		SectionExampleVideos,
	}
}

type ExampleVideo struct {
	VideoID    string
	StorageKey string
	URL        string
	Label      string
	AddedAt    time.Time
}

type Blueprint struct {
	BlueprintID    string
	BrandID        string
	Title          string
	Hooks          []string
	Personas       []string
	Dos            string
	Donts          string
	Hashtags       []string
	ExampleVideos  []ExampleVideo
	SectionOrder   []string
	HiddenSections []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UpdateBlueprintInput carries column-granular edits; nil means untouched.
// Concurrent editors race at field granularity, last write wins.
type UpdateBlueprintInput struct {
	BlueprintID string
	Title       *string
	Hooks       []string
	Personas    []string
	Dos         *string
	Donts       *string
	Hashtags    []string
}

type Repository interface {
	CreateBlueprint(ctx context.Context, blueprint Blueprint) error
	GetBlueprint(ctx context.Context, blueprintID string) (Blueprint, error)
	UpdateBlueprint(ctx context.Context, input UpdateBlueprintInput, now time.Time) (Blueprint, error)
	SetSectionLayout(ctx context.Context, blueprintID string, order []string, hidden []string, now time.Time) (Blueprint, error)
	AddExampleVideo(ctx context.Context, blueprintID string, video ExampleVideo, now time.Time) (Blueprint, error)
	RemoveExampleVideo(ctx context.Context, blueprintID string, videoID string, now time.Time) (Blueprint, error)
	ListByBrand(ctx context.Context, brandID string) ([]Blueprint, error)
	DeleteBlueprint(ctx context.Context, blueprintID string) error
}

// MediaStore persists example video uploads and hands back public URLs.
type MediaStore interface {
	SaveVideo(contentType string, size int64, body io.Reader) (string, error)
	PublicURL(key string) string
	Remove(key string) error
}

type RoleResolver interface {
	Role(ctx context.Context, brandID string, userID string) (string, error)
}
