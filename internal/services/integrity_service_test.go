package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOrphansPartitions(t *testing.T) {
	db := setupDB(t)
	svc := NewIntegrityService(db)

	owner := seedUser(t, db, "painter")
	kept := seedArtwork(t, db, owner.ID, "kept")
	orphan := seedArtwork(t, db, uuid.New(), "orphan")

	var artworks []models.Artwork
	require.NoError(t, db.Preload("Owner").Find(&artworks).Error)
	require.Len(t, artworks, 2)

	valid, deleted := svc.CleanupOrphans(artworks)
	require.Len(t, valid, 1)
	assert.Equal(t, kept.ID, valid[0].ID)
	assert.Equal(t, 1, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", orphan.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCleanupOrphansIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := NewIntegrityService(db)

	orphan := seedArtwork(t, db, uuid.New(), "orphan")

	var artworks []models.Artwork
	require.NoError(t, db.Preload("Owner").Find(&artworks).Error)

	// Two passes over the same snapshot: the second delete hits nothing.
	_, deleted := svc.CleanupOrphans(artworks)
	assert.Equal(t, 1, deleted)
	valid, deleted := svc.CleanupOrphans(artworks)
	assert.Empty(t, valid)
	assert.Equal(t, 0, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", orphan.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCleanupOrphansNoOrphans(t *testing.T) {
	db := setupDB(t)
	svc := NewIntegrityService(db)

	owner := seedUser(t, db, "painter")
	seedArtwork(t, db, owner.ID, "fine")

	var artworks []models.Artwork
	require.NoError(t, db.Preload("Owner").Find(&artworks).Error)

	valid, deleted := svc.CleanupOrphans(artworks)
	assert.Len(t, valid, 1)
	assert.Equal(t, 0, deleted)
}

func TestReclaimForOwner(t *testing.T) {
	db := setupDB(t)
	svc := NewIntegrityService(db)

	ghostID := uuid.New()
	seedArtwork(t, db, ghostID, "one")
	seedArtwork(t, db, ghostID, "two")
	owner := seedUser(t, db, "painter")
	seedArtwork(t, db, owner.ID, "untouched")

	assert.Equal(t, 2, svc.ReclaimForOwner(ghostID))
	assert.Equal(t, 0, svc.ReclaimForOwner(ghostID))

	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
