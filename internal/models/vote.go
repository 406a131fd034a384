package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Vote is append-only: rows are never updated, and are deleted only as a
// cascading consequence of explicit artwork deletion. SelectedTags holds the
// tags the voter endorsed on the artwork.
type Vote struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"artwork_id"`
	VoterID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"voter_id"`
	Score        int                         `gorm:"not null;default:0" json:"score"`
	SelectedTags datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"selected_tags"`
	CreatedAt    time.Time                   `json:"created_at"`
}
