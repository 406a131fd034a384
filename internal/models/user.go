package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	UserTypeRegular = "regular"
	UserTypeAdmin   = "admin"
	UserTypeBlocked = "blocked"
)

// User is hard-deleted (no gorm.DeletedAt): orphan detection on artworks
// relies on owner rows actually disappearing.
type User struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string                      `gorm:"size:50;not null" json:"username"`
	Email          string                      `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string                      `gorm:"not null" json:"-"`
	ProfilePicture string                      `gorm:"size:500" json:"profile_picture"`
	StreakCount    int                         `gorm:"default:0" json:"streak_count"`
	LastUploadDate *time.Time                  `json:"last_upload_date,omitempty"`
	UserType       string                      `gorm:"size:20;default:'regular'" json:"user_type"`
	IsBanned       bool                        `gorm:"default:false" json:"is_banned"`
	Friends        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"friends"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}
