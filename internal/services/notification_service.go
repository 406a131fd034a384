package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Send persists a notification for the recipient. Callers in the moderation
// and report paths treat a delivery failure as non-fatal and only log it.
func (s *NotificationService) Send(recipientID uuid.UUID, kind, title, body string) error {
	n := models.Notification{
		ID:     uuid.New(),
		UserID: recipientID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	return s.db.Create(&n).Error
}

func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) MarkRead(userID, id uuid.UUID) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (s *NotificationService) Delete(userID, id uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
