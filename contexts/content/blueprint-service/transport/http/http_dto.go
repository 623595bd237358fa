package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ExampleVideoDTO struct {
	VideoID string `json:"video_id"`
	URL     string `json:"url"`
	Label   string `json:"label,omitempty"`
	AddedAt string `json:"added_at"`
}

type BlueprintDTO struct {
	BlueprintID    string            `json:"blueprint_id"`
	BrandID        string            `json:"brand_id"`
	Title          string            `json:"title"`
	Hooks          []string          `json:"hooks"`
	Personas       []string          `json:"personas"`
	Dos            string            `json:"dos"`
	Donts          string            `json:"donts"`
	Hashtags       []string          `json:"hashtags"`
	ExampleVideos  []ExampleVideoDTO `json:"example_videos"`
	SectionOrder   []string          `json:"section_order"`
	HiddenSections []string          `json:"hidden_sections"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

type CreateBlueprintRequest struct {
	BrandID string `json:"brand_id"`
	Title   string `json:"title"`
}

type BlueprintResponse struct {
	Blueprint BlueprintDTO `json:"blueprint"`
}

type ListBlueprintsResponse struct {
	Items []BlueprintDTO `json:"items"`
}

// SaveFieldsRequest mirrors the autosave payload: only the fields the editor
// touched are sent.
type SaveFieldsRequest struct {
	Title    *string  `json:"title"`
	Hooks    []string `json:"hooks"`
	Personas []string `json:"personas"`
	Dos      *string  `json:"dos"`
	Donts    *string  `json:"donts"`
	Hashtags []string `json:"hashtags"`
}

type SetSectionLayoutRequest struct {
	Order  []string `json:"order"`
	Hidden []string `json:"hidden"`
}
