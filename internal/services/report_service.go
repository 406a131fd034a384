package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidStatus  = errors.New("invalid status")
)

const (
	ActionRemoveContent = "remove_content"
	ActionBanUser       = "ban_user"
	ActionIgnore        = "ignore"
)

const (
	StepSucceeded = "succeeded"
	StepSkipped   = "skipped"
	StepFailed    = "failed"
)

// ActionStep records the outcome of one side effect in an action dispatch.
type ActionStep struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ActionOutcome is the result of dispatching a moderation action: an ordered
// step list rather than a transaction. A step failure surfaces the partial
// completion state to the caller; nothing is rolled back.
type ActionOutcome struct {
	Action  string       `json:"action"`
	Message string       `json:"message"`
	Steps   []ActionStep `json:"steps"`
}

func (o *ActionOutcome) record(name, status string, err error) {
	step := ActionStep{Name: name, Status: status}
	if err != nil {
		step.Error = err.Error()
	}
	o.Steps = append(o.Steps, step)
}

// ReportService owns the report lifecycle: creation with owner notification,
// direct status updates, and the action dispatch state machine. A pending
// report leaves the system either resolved (status update) or deleted
// (action dispatch); the two paths are intentionally distinct.
type ReportService struct {
	db            *gorm.DB
	notifications *NotificationService
	artworks      *ArtworkService
}

func NewReportService(db *gorm.DB, notifications *NotificationService, artworks *ArtworkService) *ReportService {
	return &ReportService{db: db, notifications: notifications, artworks: artworks}
}

// Create persists a pending report, bumps the artwork's report count, and
// notifies the artwork owner. The three effects run best-effort in sequence:
// a failure partway is surfaced as the operation's error with no rollback of
// earlier effects.
func (s *ReportService) Create(artworkID, reporterID uuid.UUID, reason string) (*models.Report, error) {
	var artwork models.Artwork
	if err := s.db.First(&artwork, "id = ?", artworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}

	report := models.Report{
		ID:         uuid.New(),
		ArtworkID:  artworkID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     models.ReportStatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	// Read-modify-write on report_count; a concurrent report on the same
	// artwork can lose an increment.
	artwork.ReportCount++
	if err := s.db.Model(&artwork).UpdateColumn("report_count", artwork.ReportCount).Error; err != nil {
		return nil, fmt.Errorf("failed to update report count: %w", err)
	}

	if err := s.notifications.Send(
		artwork.OwnerID,
		models.NotificationKindReportUpdate,
		"Content Flagged",
		fmt.Sprintf("Your artwork %q has been flagged for a community review.", artwork.Title),
	); err != nil {
		slog.Error("report notification failed", "action", "report_create", "report_id", report.ID.String(), "error", err)
	}

	return &report, nil
}

func (s *ReportService) Get(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// List returns every report with artwork and reporter details joined.
func (s *ReportService) List() ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Preload("Artwork").Preload("Reporter").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, nil
}

// UpdateStatus mutates the report status directly, independent of action
// dispatch. Setting it to resolved sends exactly one notification to the
// original reporter.
func (s *ReportService) UpdateStatus(id uuid.UUID, status string) (*models.Report, error) {
	if status != models.ReportStatusPending && status != models.ReportStatusResolved {
		return nil, ErrInvalidStatus
	}

	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&report).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}
	report.Status = status

	if status == models.ReportStatusResolved {
		if err := s.notifications.Send(
			report.ReporterID,
			models.NotificationKindSystemAlert,
			"Report Resolved",
			"Thank you! The content you reported has been reviewed and handled.",
		); err != nil {
			slog.Error("resolve notification failed", "action", "report_resolve", "report_id", report.ID.String(), "error", err)
		}
	}

	return &report, nil
}

func (s *ReportService) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

// HandleAction dispatches a moderation action against a pending report. Side
// effects run before the report is deleted, so a crash partway leaves the
// report behind as a durable retry marker. Missing artwork or owner is a
// tolerated partial effect, not a failure; an unrecognized action leaves the
// report untouched.
func (s *ReportService) HandleAction(id uuid.UUID, action string) (*ActionOutcome, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	// The artwork reference may dangle; dispatch proceeds with a nil artwork.
	var artwork *models.Artwork
	var loaded models.Artwork
	if err := s.db.First(&loaded, "id = ?", report.ArtworkID).Error; err == nil {
		artwork = &loaded
	}

	outcome := &ActionOutcome{Action: action}

	switch action {
	case ActionRemoveContent:
		if artwork == nil {
			outcome.record("remove_artwork", StepSkipped, nil)
		} else if err := s.artworks.Delete(artwork.ID); err != nil && !errors.Is(err, ErrArtworkNotFound) {
			outcome.record("remove_artwork", StepFailed, err)
			return outcome, fmt.Errorf("failed to remove artwork: %w", err)
		} else {
			outcome.record("remove_artwork", StepSucceeded, nil)
		}
		if err := s.deleteReport(outcome, report.ID); err != nil {
			return outcome, err
		}
		outcome.Message = "Content removed and report resolved."

	case ActionBanUser:
		if artwork == nil {
			outcome.record("ban_owner", StepSkipped, nil)
		} else if err := s.banUser(artwork.OwnerID); err != nil {
			if errors.Is(err, ErrUserNotFound) {
				outcome.record("ban_owner", StepSkipped, nil)
			} else {
				outcome.record("ban_owner", StepFailed, err)
				return outcome, fmt.Errorf("failed to ban user: %w", err)
			}
		} else {
			outcome.record("ban_owner", StepSucceeded, nil)
		}
		if err := s.deleteReport(outcome, report.ID); err != nil {
			return outcome, err
		}
		outcome.Message = "User banned and report resolved."

	case ActionIgnore:
		if err := s.deleteReport(outcome, report.ID); err != nil {
			return outcome, err
		}
		outcome.Message = "Report ignored and deleted."

	default:
		return nil, ErrInvalidAction
	}

	return outcome, nil
}

func (s *ReportService) deleteReport(outcome *ActionOutcome, id uuid.UUID) error {
	if err := s.db.Where("id = ?", id).Delete(&models.Report{}).Error; err != nil {
		outcome.record("delete_report", StepFailed, err)
		return fmt.Errorf("failed to delete report: %w", err)
	}
	outcome.record("delete_report", StepSucceeded, nil)
	return nil
}

func (s *ReportService) banUser(userID uuid.UUID) error {
	result := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"user_type": models.UserTypeBlocked,
			"is_banned": true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
