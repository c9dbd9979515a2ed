package models

import "sort"

// CloseApproach is one pass of a near-Earth object by Earth as reported by
// the upstream NEO feed.
type CloseApproach struct {
	MissDistanceKm   float64 `json:"miss_distance_km"`
	RelativeVelocity float64 `json:"velocity_kph"`
	ApproachDate     string  `json:"approach_date"` // YYYY-MM-DD
}

// NearEarthObject represents a single record of the NEO feed.
//
// Fields:
//   - ID: upstream neo_reference_id.
//   - DiameterMinKm / DiameterMaxKm: estimated diameter bounds in kilometers.
//   - Hazardous: is_potentially_hazardous_asteroid flag.
//   - Approaches: close-approach records in upstream order.
type NearEarthObject struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	JPLURL             string          `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH float64         `json:"absolute_magnitude_h"`
	DiameterMinKm      float64         `json:"estimated_diameter_min_km"`
	DiameterMaxKm      float64         `json:"estimated_diameter_max_km"`
	Hazardous          bool            `json:"hazardous"`
	Approaches         []CloseApproach `json:"close_approaches"`
}

// MeanDiameterKm returns the midpoint of the estimated diameter range.
func (n NearEarthObject) MeanDiameterKm() float64 {
	return (n.DiameterMinKm + n.DiameterMaxKm) / 2
}

// Feed maps an ISO calendar date (YYYY-MM-DD) to the objects observed that day.
// Keys need not be contiguous.
type Feed map[string][]NearEarthObject

// Dates returns the feed keys in chronological order.
func (f Feed) Dates() []string {
	dates := make([]string, 0, len(f))
	for d := range f {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Len returns the number of objects across all dates.
func (f Feed) Len() int {
	n := 0
	for _, objs := range f {
		n += len(objs)
	}
	return n
}

// Merge appends every date of other into f. Objects of a date present in
// both feeds are appended after the existing ones.
func (f Feed) Merge(other Feed) {
	for _, d := range other.Dates() {
		f[d] = append(f[d], other[d]...)
	}
}

// StoredNEO is a near-Earth object persisted by the ingestion job together
// with its closest recorded approach.
type StoredNEO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	JPLURL             string  `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH float64 `json:"absolute_magnitude_h"`
	DiameterMinKm      float64 `json:"estimated_diameter_min_km"`
	DiameterMaxKm      float64 `json:"estimated_diameter_max_km"`
	Hazardous          bool    `json:"hazardous"`
	ClosestDistanceKm  float64 `json:"closest_distance_km"`
	ClosestDate        string  `json:"closest_approach_date"`
}

// NEOFilter narrows a listing of stored objects.
type NEOFilter struct {
	Hazardous *bool
	Limit     int
	Offset    int
}
