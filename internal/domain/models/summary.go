package models

// HazardCounts splits the processed objects by their hazard flag.
type HazardCounts struct {
	Hazardous    int `json:"hazardous"`
	NonHazardous int `json:"non_hazardous"`
}

// SizeDistribution buckets objects by mean estimated diameter:
// small < 0.5 km, medium [0.5, 2.0) km, large >= 2.0 km.
type SizeDistribution struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// Approach is an entry of the closest-approaches ranking.
type Approach struct {
	Name         string  `json:"name"`
	DistanceKm   float64 `json:"distance_km"`
	VelocityKph  float64 `json:"velocity_kph"`
	ApproachDate string  `json:"approach_date"`
}

// ObjectSummary is the per-object view listed in NEOSummary.AllObjects.
type ObjectSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DiameterKm     float64 `json:"diameter_km"`
	Hazardous      bool    `json:"hazardous"`
	VelocityKph    float64 `json:"velocity_kph"`
	MissDistanceKm float64 `json:"miss_distance_km"`
	ApproachDate   string  `json:"approach_date"`
}

// SkippedObject records a feed object excluded from every tally because it
// violated a data-shape invariant.
type SkippedObject struct {
	Date   string `json:"date"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// NEOSummary is the aggregated view of a NEO feed.
//
// Invariants:
//   - HazardCounts and SizeDistribution each sum to len(AllObjects).
//   - ClosestApproaches holds at most 5 entries, ascending by distance.
//   - AllObjects follows feed order (date ascending, then within-date order).
//
// swagger:model NEOSummary
type NEOSummary struct {
	DailyCounts       map[string]int   `json:"daily_counts"`
	HazardCounts      HazardCounts     `json:"hazard_counts"`
	SizeDistribution  SizeDistribution `json:"size_distribution"`
	ClosestApproaches []Approach       `json:"closest_approaches"`
	AllObjects        []ObjectSummary  `json:"all_objects"`
	Skipped           []SkippedObject  `json:"skipped,omitempty"`
}

// Total returns the number of objects that contributed to the summary.
func (s NEOSummary) Total() int {
	return len(s.AllObjects)
}
