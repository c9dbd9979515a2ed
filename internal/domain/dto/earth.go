package dto

import "github.com/guttosm/astropulse/internal/domain/models"

// CompareImageryResponse pairs two acquisitions of the same location.
type CompareImageryResponse struct {
	Before models.EarthImagery `json:"before"`
	After  models.EarthImagery `json:"after"`
}
