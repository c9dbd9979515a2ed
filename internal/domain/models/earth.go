package models

import "time"

// EventCategory is an EONET natural-event category.
type EventCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// EventGeometry is one dated location of an EONET event.
type EventGeometry struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// EarthEvent is a natural event (wildfire, storm, volcano...) tracked by EONET.
type EarthEvent struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Categories  []EventCategory `json:"categories"`
	Sources     []string        `json:"sources,omitempty"`
	Geometry    []EventGeometry `json:"geometry"`
}

// HasCategory reports whether the event is tagged with the category id.
func (e EarthEvent) HasCategory(id string) bool {
	for _, c := range e.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// FirstSeen returns the date of the first geometry, or the zero time.
func (e EarthEvent) FirstSeen() time.Time {
	if len(e.Geometry) == 0 {
		return time.Time{}
	}
	return e.Geometry[0].Date
}

// EarthImagery is a Landsat image reference for a location and date.
type EarthImagery struct {
	ID         string  `json:"id,omitempty"`
	Date       string  `json:"date"`
	URL        string  `json:"url"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lon"`
	Dim        float64 `json:"dim"`
	CloudScore float64 `json:"cloud_score,omitempty"`
}

// EarthAsset is an available Landsat acquisition for a location.
type EarthAsset struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// ImageryQuery locates an imagery request.
type ImageryQuery struct {
	Lat  float64 `form:"lat" validate:"latitude"`
	Lon  float64 `form:"lon" validate:"longitude"`
	Date string  `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Dim  float64 `form:"dim" validate:"omitempty,gt=0,lte=1"`
}

// CompareQuery requests the same location at two dates.
type CompareQuery struct {
	Lat   float64 `form:"lat" validate:"latitude"`
	Lon   float64 `form:"lon" validate:"longitude"`
	Date1 string  `form:"date1" validate:"required,datetime=2006-01-02"`
	Date2 string  `form:"date2" validate:"required,datetime=2006-01-02"`
}

// AssetsQuery lists acquisitions for a location over an optional window.
type AssetsQuery struct {
	Lat       float64 `form:"lat" validate:"latitude"`
	Lon       float64 `form:"lon" validate:"longitude"`
	BeginDate string  `form:"begin_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string  `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// EventsQuery filters natural events.
type EventsQuery struct {
	Category string `form:"category" validate:"omitempty,max=64"`
	Days     int    `form:"days" validate:"omitempty,min=1,max=3650"`
}
