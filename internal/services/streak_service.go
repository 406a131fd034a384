package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"gorm.io/gorm"
)

// StreakService tracks consecutive-day upload streaks. It is invoked after
// artwork creation; a failure here never fails the upload.
type StreakService struct {
	db *gorm.DB
}

func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{db: db}
}

// RecordUpload bumps the user's streak: a consecutive-day upload increments
// it, a same-day upload leaves it untouched, a gap resets it to 1.
func (s *StreakService) RecordUpload(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	today := dateOf(time.Now().UTC())
	newStreak := 1
	if user.LastUploadDate != nil {
		last := dateOf(*user.LastUploadDate)
		switch {
		case last.Equal(today):
			return nil
		case last.Equal(today.AddDate(0, 0, -1)):
			newStreak = user.StreakCount + 1
		}
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"streak_count":     newStreak,
		"last_upload_date": today,
	}).Error
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
