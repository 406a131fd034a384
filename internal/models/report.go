package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

// Report leaves the pending state one of two ways: a direct status update to
// resolved, or action dispatch, which deletes the row outright. The artwork
// reference may dangle if the artwork was removed out of band; the pipeline
// tolerates that.
type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID  uuid.UUID `gorm:"type:uuid;not null;index" json:"artwork_id"`
	Artwork    *Artwork  `gorm:"foreignKey:ArtworkID" json:"artwork,omitempty"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reporter   *User     `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Reason     string    `gorm:"size:500;not null" json:"reason"`
	Status     string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
