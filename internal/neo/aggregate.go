// Package neo turns a date-indexed near-Earth-object feed into the summary
// served by the NEO endpoints. Everything here is pure and safe for
// concurrent use.
package neo

import (
	"errors"
	"math"
	"sort"

	"github.com/guttosm/astropulse/internal/domain/models"
)

const (
	// SmallMaxKm and MediumMaxKm are the exclusive upper bounds of the small
	// and medium size buckets. Boundaries belong to the higher bucket.
	SmallMaxKm  = 0.5
	MediumMaxKm = 2.0

	// MaxClosestApproaches caps the closest-approach ranking.
	MaxClosestApproaches = 5
)

// Aggregate computes the summary of feed.
//
// Objects are visited by ascending date, then in feed order within a date.
// An object that breaks a shape invariant is left out of every tally,
// daily_counts included, and listed in Skipped; the returned error then joins
// one *DataShapeError per skipped object. The summary is always complete over
// the well-formed objects.
func Aggregate(feed models.Feed) (models.NEOSummary, error) {
	summary := models.NEOSummary{
		DailyCounts:       make(map[string]int, len(feed)),
		ClosestApproaches: []models.Approach{},
		AllObjects:        make([]models.ObjectSummary, 0, feed.Len()),
	}

	var (
		closest   []models.Approach
		shapeErrs []error
	)

	for _, date := range feed.Dates() {
		accepted := 0
		for _, obj := range feed[date] {
			if reason := checkShape(obj); reason != "" {
				shapeErr := &DataShapeError{Date: date, ID: obj.ID, Name: obj.Name, Reason: reason}
				shapeErrs = append(shapeErrs, shapeErr)
				summary.Skipped = append(summary.Skipped, models.SkippedObject{
					Date: date, ID: obj.ID, Name: obj.Name, Reason: reason,
				})
				continue
			}
			accepted++

			if obj.Hazardous {
				summary.HazardCounts.Hazardous++
			} else {
				summary.HazardCounts.NonHazardous++
			}

			diameter := obj.MeanDiameterKm()
			switch SizeBucket(diameter) {
			case "small":
				summary.SizeDistribution.Small++
			case "medium":
				summary.SizeDistribution.Medium++
			default:
				summary.SizeDistribution.Large++
			}

			ca := ClosestApproach(obj.Approaches)
			closest = append(closest, models.Approach{
				Name:         obj.Name,
				DistanceKm:   ca.MissDistanceKm,
				VelocityKph:  ca.RelativeVelocity,
				ApproachDate: ca.ApproachDate,
			})
			summary.AllObjects = append(summary.AllObjects, models.ObjectSummary{
				ID:             obj.ID,
				Name:           obj.Name,
				DiameterKm:     diameter,
				Hazardous:      obj.Hazardous,
				VelocityKph:    ca.RelativeVelocity,
				MissDistanceKm: ca.MissDistanceKm,
				ApproachDate:   ca.ApproachDate,
			})
		}
		summary.DailyCounts[date] = accepted
	}

	sort.SliceStable(closest, func(i, j int) bool {
		return closest[i].DistanceKm < closest[j].DistanceKm
	})
	if len(closest) > MaxClosestApproaches {
		closest = closest[:MaxClosestApproaches]
	}
	if len(closest) > 0 {
		summary.ClosestApproaches = closest
	}

	return summary, errors.Join(shapeErrs...)
}

// SizeBucket classifies a mean diameter in kilometers.
func SizeBucket(diameterKm float64) string {
	switch {
	case diameterKm < SmallMaxKm:
		return "small"
	case diameterKm < MediumMaxKm:
		return "medium"
	default:
		return "large"
	}
}

// ClosestApproach returns the approach with the smallest miss distance; the
// first one wins a tie. approaches must be non-empty.
func ClosestApproach(approaches []models.CloseApproach) models.CloseApproach {
	best := approaches[0]
	for _, ca := range approaches[1:] {
		if ca.MissDistanceKm < best.MissDistanceKm {
			best = ca
		}
	}
	return best
}

// CheckShape returns a *DataShapeError when obj, listed under date, breaks a
// record invariant, and nil otherwise.
func CheckShape(date string, obj models.NearEarthObject) error {
	if reason := checkShape(obj); reason != "" {
		return &DataShapeError{Date: date, ID: obj.ID, Name: obj.Name, Reason: reason}
	}
	return nil
}

// checkShape returns a non-empty reason when obj cannot be aggregated.
func checkShape(obj models.NearEarthObject) string {
	if len(obj.Approaches) == 0 {
		return "no close-approach data"
	}
	if !validMeasure(obj.DiameterMinKm) || !validMeasure(obj.DiameterMaxKm) {
		return "estimated diameter must be a finite non-negative number"
	}
	if obj.DiameterMinKm > obj.DiameterMaxKm {
		return "estimated diameter min exceeds max"
	}
	for _, ca := range obj.Approaches {
		if !validMeasure(ca.MissDistanceKm) {
			return "miss distance must be a finite non-negative number"
		}
		if !validMeasure(ca.RelativeVelocity) {
			return "relative velocity must be a finite non-negative number"
		}
	}
	return ""
}

func validMeasure(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
