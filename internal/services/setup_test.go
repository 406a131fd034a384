package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an isolated in-memory database and migrates the full schema.
// Foreign key constraints are disabled so dangling owner references are
// representable, matching the production schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Artwork{},
		&models.Vote{},
		&models.Report{},
		&models.Notification{},
		&models.RefreshToken{},
		&models.SystemLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		UserType: models.UserTypeRegular,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedArtwork(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *models.Artwork {
	t.Helper()
	artwork := &models.Artwork{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      title,
		Privacy:    models.PrivacyPublic,
		UploadDate: time.Now().UTC(),
	}
	require.NoError(t, db.Create(artwork).Error)
	return artwork
}

// seedVote inserts a vote with an explicit timestamp so log order is
// deterministic in tests.
func seedVote(t *testing.T, db *gorm.DB, artworkID, voterID uuid.UUID, score int, tags []string, at time.Time) *models.Vote {
	t.Helper()
	vote := &models.Vote{
		ID:           uuid.New(),
		ArtworkID:    artworkID,
		VoterID:      voterID,
		Score:        score,
		SelectedTags: tags,
		CreatedAt:    at,
	}
	require.NoError(t, db.Create(vote).Error)
	return vote
}
