package models

import "time"

// APOD is an Astronomy Picture of the Day entry cached in the apods table.
type APOD struct {
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Explanation string    `json:"explanation"`
	ImageURL    string    `json:"url"`
	HDURL       string    `json:"hdurl,omitempty"`
	MediaType   string    `json:"media_type"`
	Copyright   string    `json:"copyright,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NasaID is the identifier used when the picture is bookmarked.
func (a APOD) NasaID() string {
	return a.Date.Format("2006-01-02")
}
