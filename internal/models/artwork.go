package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
	PrivacyFriends = "friends"
)

// Artwork references its owner without a DB-level foreign key constraint
// (see database.Connect): an artwork whose owner row is gone is an orphan,
// detected and reclaimed at read time by the integrity service.
//
// TotalScore is a denormalized cache of the vote rollup; the vote log in the
// votes table is the source of truth.
type Artwork struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *User                       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	ImageURL    string                      `gorm:"size:500" json:"image_url"`
	Privacy     string                      `gorm:"size:20;default:'public'" json:"privacy"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	UploadDate  time.Time                   `gorm:"index" json:"upload_date"`
	TotalScore  int                         `gorm:"default:0;index" json:"total_score"`
	ReportCount int                         `gorm:"default:0" json:"report_count"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
