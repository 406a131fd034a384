package services

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"gorm.io/gorm"
)

// IntegrityService reclaims artworks whose owner row no longer exists.
// Every read path that joins Artwork to its owner runs one of these cleanup
// passes inline; a failed delete is logged and never blocks the read.
type IntegrityService struct {
	db *gorm.DB
}

func NewIntegrityService(db *gorm.DB) *IntegrityService {
	return &IntegrityService{db: db}
}

// CleanupOrphans partitions artworks fetched with Owner preloaded into valid
// and orphaned, bulk-deletes the orphaned ids, and returns the valid set
// along with the number of rows actually deleted. Deleting an id that is
// already gone is not an error, so concurrent readers racing on the same
// orphan are harmless.
func (s *IntegrityService) CleanupOrphans(artworks []models.Artwork) ([]models.Artwork, int) {
	valid := make([]models.Artwork, 0, len(artworks))
	var orphanIDs []uuid.UUID
	for _, art := range artworks {
		if art.Owner != nil {
			valid = append(valid, art)
		} else {
			orphanIDs = append(orphanIDs, art.ID)
		}
	}

	if len(orphanIDs) == 0 {
		return valid, 0
	}

	result := s.db.Where("id IN ?", orphanIDs).Delete(&models.Artwork{})
	if result.Error != nil {
		slog.Error("orphan cleanup failed", "action", "orphan_cleanup", "error", result.Error, "count", len(orphanIDs))
		return valid, 0
	}

	slog.Info("deleted orphaned artworks", "action", "orphan_cleanup", "deleted", result.RowsAffected)
	return valid, int(result.RowsAffected)
}

// ReclaimForOwner deletes every artwork belonging to an owner id that no
// longer resolves. Used by the owner-lookup path, which reclaims the whole
// set rather than just the queried page.
func (s *IntegrityService) ReclaimForOwner(ownerID uuid.UUID) int {
	result := s.db.Where("owner_id = ?", ownerID).Delete(&models.Artwork{})
	if result.Error != nil {
		slog.Error("owner reclamation failed", "action", "orphan_cleanup", "owner_id", ownerID.String(), "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("deleted artworks for non-existent owner", "action", "orphan_cleanup", "owner_id", ownerID.String(), "deleted", result.RowsAffected)
	}
	return int(result.RowsAffected)
}

// ReclaimArtwork deletes a single orphaned artwork discovered on a by-id read.
func (s *IntegrityService) ReclaimArtwork(id uuid.UUID) {
	if err := s.db.Where("id = ?", id).Delete(&models.Artwork{}).Error; err != nil {
		slog.Error("orphan reclamation failed", "action", "orphan_cleanup", "artwork_id", id.String(), "error", err)
		return
	}
	slog.Info("deleted orphaned artwork on preview", "action", "orphan_cleanup", "artwork_id", id.String())
}
