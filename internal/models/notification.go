package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationKindReportUpdate = "report_update"
	NotificationKindSystemAlert  = "system_alert"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      string    `gorm:"size:30;not null" json:"kind"`
	Title     string    `gorm:"size:200" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
