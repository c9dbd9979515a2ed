package models

import "time"

// Favorite is a bookmark of a NASA item by a user.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	NasaID    string    `json:"nasa_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoritePage is one page of a user's favorites, newest first.
type FavoritePage struct {
	Items   []Favorite `json:"items"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Total   int        `json:"total"`
}
