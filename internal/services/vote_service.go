package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"gorm.io/gorm"
)

// VoteService appends to the vote log and maintains the denormalized
// Artwork.TotalScore cache alongside it. The vote log stays the source of
// truth; the leaderboard service recomputes rollups from it on demand.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// Cast appends a vote for the artwork and bumps its cached total score.
func (s *VoteService) Cast(artworkID, voterID uuid.UUID, score int, selectedTags []string) (*models.Vote, error) {
	var artwork models.Artwork
	if err := s.db.First(&artwork, "id = ?", artworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to load artwork: %w", err)
	}

	vote := models.Vote{
		ID:           uuid.New(),
		ArtworkID:    artworkID,
		VoterID:      voterID,
		Score:        score,
		SelectedTags: selectedTags,
	}
	if err := s.db.Create(&vote).Error; err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	if err := s.db.Model(&models.Artwork{}).Where("id = ?", artworkID).
		UpdateColumn("total_score", gorm.Expr("total_score + ?", score)).Error; err != nil {
		return nil, fmt.Errorf("failed to update cached score: %w", err)
	}

	return &vote, nil
}

// RefreshTotalScore recomputes the artwork's total score from the vote log
// and writes it back to the cache column, returning the fresh value.
func (s *VoteService) RefreshTotalScore(artworkID uuid.UUID) (int, error) {
	var exists int64
	if err := s.db.Model(&models.Artwork{}).Where("id = ?", artworkID).Count(&exists).Error; err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, ErrArtworkNotFound
	}

	var total int
	err := s.db.Model(&models.Vote{}).
		Where("artwork_id = ?", artworkID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	if err := s.db.Model(&models.Artwork{}).Where("id = ?", artworkID).
		UpdateColumn("total_score", total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
