package nasa

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/guttosm/astropulse/internal/domain/models"
)

const neoFeedEndpoint = "neo_feed"

type feedResponse struct {
	ElementCount     int                  `json:"element_count"`
	NearEarthObjects map[string][]wireNEO `json:"near_earth_objects"`
}

type wireNEO struct {
	ID                 string  `json:"neo_reference_id"`
	Name               string  `json:"name"`
	JPLURL             string  `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH float64 `json:"absolute_magnitude_h"`
	EstimatedDiameter  struct {
		Kilometers *struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"kilometers"`
	} `json:"estimated_diameter"`
	Hazardous         bool           `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData []wireApproach `json:"close_approach_data"`
}

type wireApproach struct {
	Date             string `json:"close_approach_date"`
	RelativeVelocity struct {
		KilometersPerHour string `json:"kilometers_per_hour"`
	} `json:"relative_velocity"`
	MissDistance struct {
		Kilometers string `json:"kilometers"`
	} `json:"miss_distance"`
}

// NEOFeed fetches the near-Earth-object feed for an inclusive date range
// (YYYY-MM-DD). The upstream serves at most 7 days per call.
func (c *Client) NEOFeed(ctx context.Context, startDate, endDate string) (models.Feed, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	var resp feedResponse
	if err := c.getJSON(ctx, neoFeedEndpoint, c.nasaAPI, "/neo/rest/v1/feed", params, true, &resp); err != nil {
		return nil, err
	}
	if resp.NearEarthObjects == nil {
		return nil, malformed(neoFeedEndpoint, "missing near_earth_objects")
	}

	feed := make(models.Feed, len(resp.NearEarthObjects))
	for date, objs := range resp.NearEarthObjects {
		converted := make([]models.NearEarthObject, 0, len(objs))
		for i, w := range objs {
			obj, err := w.toModel()
			if err != nil {
				return nil, malformed(neoFeedEndpoint, "%s[%d]: %v", date, i, err)
			}
			converted = append(converted, obj)
		}
		feed[date] = converted
	}
	return feed, nil
}

func (w wireNEO) toModel() (models.NearEarthObject, error) {
	if strings.TrimSpace(w.ID) == "" {
		return models.NearEarthObject{}, errors.New("missing neo_reference_id")
	}
	if w.EstimatedDiameter.Kilometers == nil {
		return models.NearEarthObject{}, fmt.Errorf("neo %s: missing estimated_diameter.kilometers", w.ID)
	}

	obj := models.NearEarthObject{
		ID:                 w.ID,
		Name:               w.Name,
		JPLURL:             w.JPLURL,
		AbsoluteMagnitudeH: w.AbsoluteMagnitudeH,
		DiameterMinKm:      w.EstimatedDiameter.Kilometers.Min,
		DiameterMaxKm:      w.EstimatedDiameter.Kilometers.Max,
		Hazardous:          w.Hazardous,
		Approaches:         make([]models.CloseApproach, 0, len(w.CloseApproachData)),
	}
	for _, a := range w.CloseApproachData {
		dist, err := strconv.ParseFloat(a.MissDistance.Kilometers, 64)
		if err != nil {
			return models.NearEarthObject{}, fmt.Errorf("neo %s: miss_distance.kilometers %q is not a number", w.ID, a.MissDistance.Kilometers)
		}
		vel, err := strconv.ParseFloat(a.RelativeVelocity.KilometersPerHour, 64)
		if err != nil {
			return models.NearEarthObject{}, fmt.Errorf("neo %s: relative_velocity.kilometers_per_hour %q is not a number", w.ID, a.RelativeVelocity.KilometersPerHour)
		}
		obj.Approaches = append(obj.Approaches, models.CloseApproach{
			MissDistanceKm:   dist,
			RelativeVelocity: vel,
			ApproachDate:     a.Date,
		})
	}
	return obj, nil
}
