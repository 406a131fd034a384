package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/dto"
	"github.com/sharedspace-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newArtworkService(db *gorm.DB) *ArtworkService {
	return NewArtworkService(db, NewIntegrityService(db), NewStreakService(db))
}

func TestCreateArtworkStartsStreak(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)
	owner := seedUser(t, db, "painter")

	art, err := svc.Create(owner.ID, &dto.CreateArtworkRequest{
		Title: "sunrise",
		Tags:  []string{"landscape"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPublic, art.Privacy)
	assert.False(t, art.UploadDate.IsZero())

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", owner.ID).Error)
	assert.Equal(t, 1, reloaded.StreakCount)
}

func TestGetByIDReclaimsOrphan(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)

	orphan := seedArtwork(t, db, uuid.New(), "orphan")

	_, err := svc.GetByID(orphan.ID)
	assert.ErrorIs(t, err, ErrArtworkNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", orphan.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestListByOwnerReclaimsWhenOwnerGone(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)

	ghostID := uuid.New()
	seedArtwork(t, db, ghostID, "left behind")
	seedArtwork(t, db, ghostID, "also left behind")

	_, err := svc.ListByOwner(ghostID)
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Where("owner_id = ?", ghostID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestListByOwnerEmpty(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)
	owner := seedUser(t, db, "painter")

	_, err := svc.ListByOwner(owner.ID)
	assert.ErrorIs(t, err, ErrArtworkNotFound)
}

func TestUpdateArtworkPartialFields(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)
	owner := seedUser(t, db, "painter")
	art := seedArtwork(t, db, owner.ID, "before")

	title := "after"
	updated, err := svc.Update(art.ID, &dto.UpdateArtworkRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, models.PrivacyPublic, updated.Privacy)

	_, err = svc.Update(uuid.New(), &dto.UpdateArtworkRequest{Title: &title})
	assert.ErrorIs(t, err, ErrArtworkNotFound)
}

func TestDeleteArtworkCascadesVotes(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)
	owner := seedUser(t, db, "painter")
	voter := seedUser(t, db, "voter")
	art := seedArtwork(t, db, owner.ID, "doomed")
	other := seedArtwork(t, db, owner.ID, "survivor")

	base := time.Now().UTC()
	seedVote(t, db, art.ID, voter.ID, 5, nil, base)
	seedVote(t, db, art.ID, voter.ID, 3, nil, base.Add(time.Second))
	seedVote(t, db, other.ID, voter.ID, 2, nil, base.Add(2*time.Second))

	require.NoError(t, svc.Delete(art.ID))

	var votes []models.Vote
	require.NoError(t, db.Find(&votes).Error)
	require.Len(t, votes, 1)
	assert.Equal(t, other.ID, votes[0].ArtworkID)

	assert.ErrorIs(t, svc.Delete(art.ID), ErrArtworkNotFound)
}

func TestDeleteOwnedSkipsForeignArtworks(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)
	owner := seedUser(t, db, "painter")
	other := seedUser(t, db, "other")

	mine := seedArtwork(t, db, owner.ID, "mine")
	notMine := seedArtwork(t, db, other.ID, "not mine")

	deleted, err := svc.DeleteOwned(owner.ID, []uuid.UUID{mine.ID, notMine.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", notMine.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListFriends(t *testing.T) {
	db := setupDB(t)
	svc := newArtworkService(db)

	friend := seedUser(t, db, "friend")
	stranger := seedUser(t, db, "stranger")
	me := seedUser(t, db, "me")
	me.Friends = datatypes.JSONSlice[string]{friend.ID.String()}
	require.NoError(t, db.Save(me).Error)

	seedArtwork(t, db, friend.ID, "friendly")
	seedArtwork(t, db, stranger.ID, "strange")

	artworks, err := svc.ListFriends(me.ID)
	require.NoError(t, err)
	require.Len(t, artworks, 1)
	assert.Equal(t, "friendly", artworks[0].Title)

	_, err = svc.ListFriends(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
