package services

import (
	"testing"
	"time"

	"github.com/sharedspace-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUploadFirstUpload(t *testing.T) {
	db := setupDB(t)
	svc := NewStreakService(db)
	user := seedUser(t, db, "painter")

	require.NoError(t, svc.RecordUpload(user.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 1, reloaded.StreakCount)
	require.NotNil(t, reloaded.LastUploadDate)
}

func TestRecordUploadSameDayNoOp(t *testing.T) {
	db := setupDB(t)
	svc := NewStreakService(db)
	user := seedUser(t, db, "painter")

	today := dateOf(time.Now().UTC())
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"streak_count":     3,
		"last_upload_date": today,
	}).Error)

	require.NoError(t, svc.RecordUpload(user.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 3, reloaded.StreakCount)
}

func TestRecordUploadConsecutiveDayIncrements(t *testing.T) {
	db := setupDB(t)
	svc := NewStreakService(db)
	user := seedUser(t, db, "painter")

	yesterday := dateOf(time.Now().UTC()).AddDate(0, 0, -1)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"streak_count":     3,
		"last_upload_date": yesterday,
	}).Error)

	require.NoError(t, svc.RecordUpload(user.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 4, reloaded.StreakCount)
}

func TestRecordUploadGapResets(t *testing.T) {
	db := setupDB(t)
	svc := NewStreakService(db)
	user := seedUser(t, db, "painter")

	lastWeek := dateOf(time.Now().UTC()).AddDate(0, 0, -7)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"streak_count":     9,
		"last_upload_date": lastWeek,
	}).Error)

	require.NoError(t, svc.RecordUpload(user.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 1, reloaded.StreakCount)
}
