package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	ArtworkID uuid.UUID `json:"artwork_id"`
	Reason    string    `json:"reason"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status"`
}

type ReportActionRequest struct {
	Action string `json:"action"`
}
