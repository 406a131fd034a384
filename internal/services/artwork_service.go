package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/dto"
	"github.com/sharedspace-app/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrOwnerNotFound   = errors.New("owner not found")
	ErrUserNotFound    = errors.New("user not found")
)

type ArtworkService struct {
	db        *gorm.DB
	integrity *IntegrityService
	streaks   *StreakService
}

func NewArtworkService(db *gorm.DB, integrity *IntegrityService, streaks *StreakService) *ArtworkService {
	return &ArtworkService{db: db, integrity: integrity, streaks: streaks}
}

// ListAll returns every artwork, newest first, after reclaiming orphans.
func (s *ArtworkService) ListAll() ([]models.Artwork, error) {
	var artworks []models.Artwork
	if err := s.db.Preload("Owner").Order("upload_date DESC").Find(&artworks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch artworks: %w", err)
	}
	valid, _ := s.integrity.CleanupOrphans(artworks)
	return valid, nil
}

func (s *ArtworkService) ListMine(userID uuid.UUID) ([]models.Artwork, error) {
	var artworks []models.Artwork
	if err := s.db.Preload("Owner").Where("owner_id = ?", userID).Find(&artworks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch artworks: %w", err)
	}
	valid, _ := s.integrity.CleanupOrphans(artworks)
	return valid, nil
}

// ListFriends returns artworks owned by the user's friends, newest first.
func (s *ArtworkService) ListFriends(userID uuid.UUID) ([]models.Artwork, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if len(user.Friends) == 0 {
		return []models.Artwork{}, nil
	}

	friendIDs := make([]uuid.UUID, 0, len(user.Friends))
	for _, f := range user.Friends {
		if id, err := uuid.Parse(f); err == nil {
			friendIDs = append(friendIDs, id)
		}
	}

	var artworks []models.Artwork
	if err := s.db.Preload("Owner").
		Where("owner_id IN ?", friendIDs).
		Order("upload_date DESC").
		Find(&artworks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch friends artworks: %w", err)
	}
	valid, _ := s.integrity.CleanupOrphans(artworks)
	return valid, nil
}

// ListByOwner checks owner existence first: a vanished owner triggers
// reclamation of their entire artwork set and a not-found result.
func (s *ArtworkService) ListByOwner(ownerID uuid.UUID) ([]models.Artwork, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", ownerID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		s.integrity.ReclaimForOwner(ownerID)
		return nil, ErrOwnerNotFound
	}

	var artworks []models.Artwork
	if err := s.db.Where("owner_id = ?", ownerID).Find(&artworks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch artworks: %w", err)
	}
	if len(artworks) == 0 {
		return nil, ErrArtworkNotFound
	}
	return artworks, nil
}

// GetByID returns a single artwork with its owner. An orphan is reclaimed
// and reported as not found.
func (s *ArtworkService) GetByID(id uuid.UUID) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := s.db.Preload("Owner").First(&artwork, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}

	if artwork.Owner == nil {
		s.integrity.ReclaimArtwork(artwork.ID)
		return nil, ErrArtworkNotFound
	}
	return &artwork, nil
}

func (s *ArtworkService) Create(ownerID uuid.UUID, req *dto.CreateArtworkRequest) (*models.Artwork, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}

	artwork := models.Artwork{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Privacy:     privacy,
		Tags:        req.Tags,
		UploadDate:  time.Now().UTC(),
	}
	if err := s.db.Create(&artwork).Error; err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}

	// Streak bookkeeping is best-effort; the upload already succeeded.
	if err := s.streaks.RecordUpload(ownerID); err != nil {
		slog.Error("streak update failed", "action", "streak_update", "user_id", ownerID.String(), "error", err)
	}

	return &artwork, nil
}

func (s *ArtworkService) Update(id uuid.UUID, req *dto.UpdateArtworkRequest) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := s.db.First(&artwork, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		artwork.Title = *req.Title
	}
	if req.Description != nil {
		artwork.Description = *req.Description
	}
	if req.ImageURL != nil {
		artwork.ImageURL = *req.ImageURL
	}
	if req.Privacy != nil {
		artwork.Privacy = *req.Privacy
	}
	if req.Tags != nil {
		artwork.Tags = *req.Tags
	}

	if err := s.db.Save(&artwork).Error; err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}
	return &artwork, nil
}

// Delete removes the artwork and cascades deletion of its votes, so the vote
// log never accumulates rows for explicitly deleted artworks. Reports that
// reference the artwork are left in place; the moderation pipeline tolerates
// a dangling artwork reference.
func (s *ArtworkService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Artwork{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrArtworkNotFound
		}
		return tx.Where("artwork_id = ?", id).Delete(&models.Vote{}).Error
	})
}

// DeleteOwned bulk-deletes the caller's own artworks (and their votes),
// ignoring ids the caller does not own.
func (s *ArtworkService) DeleteOwned(ownerID uuid.UUID, ids []uuid.UUID) (int, error) {
	var deleted int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var owned []uuid.UUID
		if err := tx.Model(&models.Artwork{}).
			Where("id IN ? AND owner_id = ?", ids, ownerID).
			Pluck("id", &owned).Error; err != nil {
			return err
		}
		if len(owned) == 0 {
			return nil
		}

		result := tx.Where("id IN ?", owned).Delete(&models.Artwork{})
		if result.Error != nil {
			return result.Error
		}
		deleted = int(result.RowsAffected)
		return tx.Where("artwork_id IN ?", owned).Delete(&models.Vote{}).Error
	})
	return deleted, err
}
