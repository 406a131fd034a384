package dto

import "github.com/google/uuid"

type CreateArtworkRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Privacy     string   `json:"privacy"`
	Tags        []string `json:"tags"`
}

// UpdateArtworkRequest carries partial updates; nil fields are left untouched.
type UpdateArtworkRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Privacy     *string   `json:"privacy"`
	Tags        *[]string `json:"tags"`
}

type OwnerLookupRequest struct {
	OwnerID uuid.UUID `json:"owner_id"`
}

type DeleteArtworksRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type CastVoteRequest struct {
	Score        int      `json:"score"`
	SelectedTags []string `json:"selected_tags"`
}
