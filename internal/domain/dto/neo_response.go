package dto

import "github.com/guttosm/astropulse/internal/domain/models"

// NEOSummaryResponse is returned by GET /api/v1/neo/summary. The summary
// fields are inlined next to the resolved range.
//
// Warnings carry the non-fatal notes produced while validating the
// requested range.
type NEOSummaryResponse struct {
	StartDate string   `json:"start_date" example:"2024-01-01"`
	EndDate   string   `json:"end_date" example:"2024-01-07"`
	Warnings  []string `json:"warnings"`
	models.NEOSummary
}

// NEOListResponse is returned by GET /api/v1/neo/objects.
type NEOListResponse struct {
	Items  []models.StoredNEO `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
