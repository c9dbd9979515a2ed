package ingestion

import (
	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/neo"
)

// partitionFeed flattens a feed into storable objects and the shape errors
// of the ones left out. Dates are visited in ascending order.
func partitionFeed(feed models.Feed) (valid []models.NearEarthObject, skipped []error) {
	valid = make([]models.NearEarthObject, 0, feed.Len())
	for _, date := range feed.Dates() {
		for _, obj := range feed[date] {
			if err := neo.CheckShape(date, obj); err != nil {
				skipped = append(skipped, err)
				continue
			}
			valid = append(valid, obj)
		}
	}
	return valid, skipped
}
