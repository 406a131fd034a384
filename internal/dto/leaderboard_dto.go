package dto

import (
	"github.com/google/uuid"

	"github.com/sharedspace-app/backend/internal/models"
)

type RankedArtwork struct {
	ArtworkID  uuid.UUID       `json:"artwork_id"`
	TotalScore int             `json:"total_score"`
	Artwork    *models.Artwork `json:"artwork"`
}

type RankedArtist struct {
	UserID     uuid.UUID    `json:"user_id"`
	TotalScore int          `json:"total_score"`
	User       UserResponse `json:"user"`
}

type ArtworkRankRequest struct {
	ArtworkID uuid.UUID `json:"artwork_id"`
}

type ArtworkRankResponse struct {
	Rank       int `json:"rank"`
	TotalScore int `json:"total_score"`
}

// TopPublicArtwork is the reduced shape served on the public leaderboard,
// computed from the cached Artwork.TotalScore rather than the vote log.
type TopPublicArtwork struct {
	Image      string `json:"img"`
	TotalScore int    `json:"total_score"`
	Author     string `json:"author"`
}

type StreakLeader struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Image string `json:"img"`
}
