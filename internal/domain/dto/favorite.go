package dto

// ToggleAPODFavoriteRequest is the body of POST /api/v1/favorites/apod.
type ToggleAPODFavoriteRequest struct {
	Date string `json:"date" binding:"required" validate:"required,datetime=2006-01-02" example:"2024-01-05"`
}

// ToggleFavoriteResponse reports whether the item is a favorite after the toggle.
type ToggleFavoriteResponse struct {
	NasaID     string `json:"nasa_id" example:"2024-01-05"`
	IsFavorite bool   `json:"is_favorite"`
}
