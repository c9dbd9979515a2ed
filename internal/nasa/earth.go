package nasa

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/guttosm/astropulse/internal/domain/models"
)

const (
	imageryEndpoint    = "earth_imagery"
	assetsEndpoint     = "earth_assets"
	eventsEndpoint     = "eonet_events"
	categoriesEndpoint = "eonet_categories"

	// DefaultImageryDim is the image width/height in degrees.
	DefaultImageryDim = 0.025
)

type wireAsset struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	URL        string  `json:"url"`
	CloudScore float64 `json:"cloud_score"`
}

// EarthImagery resolves the Landsat image closest to date for a location.
// An empty date means today.
func (c *Client) EarthImagery(ctx context.Context, q models.ImageryQuery) (models.EarthImagery, error) {
	date := q.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	dim := q.Dim
	if dim == 0 {
		dim = DefaultImageryDim
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	params.Set("date", date)
	params.Set("dim", strconv.FormatFloat(dim, 'f', -1, 64))

	var resp wireAsset
	if err := c.getJSON(ctx, imageryEndpoint, c.nasaAPI, "/planetary/earth/assets", params, true, &resp); err != nil {
		return models.EarthImagery{}, err
	}
	if resp.URL == "" {
		return models.EarthImagery{}, malformed(imageryEndpoint, "missing url")
	}

	return models.EarthImagery{
		ID:         resp.ID,
		Date:       resp.Date,
		URL:        resp.URL,
		Latitude:   q.Lat,
		Longitude:  q.Lon,
		Dim:        dim,
		CloudScore: resp.CloudScore,
	}, nil
}

// EarthAssets lists the acquisitions available for a location.
func (c *Client) EarthAssets(ctx context.Context, q models.AssetsQuery) ([]models.EarthAsset, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	if q.BeginDate != "" {
		params.Set("begin", q.BeginDate)
	}
	if q.EndDate != "" {
		params.Set("end", q.EndDate)
	}

	var resp struct {
		Count   int         `json:"count"`
		Results []wireAsset `json:"results"`
	}
	if err := c.getJSON(ctx, assetsEndpoint, c.nasaAPI, "/planetary/earth/assets", params, true, &resp); err != nil {
		return nil, err
	}

	out := make([]models.EarthAsset, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, models.EarthAsset{ID: r.ID, Date: r.Date})
	}
	return out, nil
}

type wireEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Categories  []struct {
		ID    json.RawMessage `json:"id"`
		Title string          `json:"title"`
	} `json:"categories"`
	Sources []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"sources"`
	Geometry []struct {
		Date        time.Time       `json:"date"`
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// EarthEvents lists natural events reported within the last days days.
func (c *Client) EarthEvents(ctx context.Context, days int) ([]models.EarthEvent, error) {
	params := url.Values{}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}

	var resp struct {
		Events []wireEvent `json:"events"`
	}
	if err := c.getJSON(ctx, eventsEndpoint, c.eonet, "/events", params, false, &resp); err != nil {
		return nil, err
	}

	out := make([]models.EarthEvent, 0, len(resp.Events))
	for _, w := range resp.Events {
		ev := models.EarthEvent{ID: w.ID, Title: w.Title, Description: w.Description}
		for _, cat := range w.Categories {
			ev.Categories = append(ev.Categories, models.EventCategory{ID: rawID(cat.ID), Title: cat.Title})
		}
		for _, s := range w.Sources {
			ev.Sources = append(ev.Sources, s.ID)
		}
		for _, g := range w.Geometry {
			geo := models.EventGeometry{Date: g.Date, Type: g.Type}
			// Only points carry a flat [lon, lat] pair; polygons are dropped.
			var point []float64
			if err := json.Unmarshal(g.Coordinates, &point); err == nil {
				geo.Coordinates = point
			}
			ev.Geometry = append(ev.Geometry, geo)
		}
		out = append(out, ev)
	}
	return out, nil
}

// EarthCategories lists the EONET event categories.
func (c *Client) EarthCategories(ctx context.Context) ([]models.EventCategory, error) {
	var resp struct {
		Categories []struct {
			ID          json.RawMessage `json:"id"`
			Title       string          `json:"title"`
			Description string          `json:"description"`
		} `json:"categories"`
	}
	if err := c.getJSON(ctx, categoriesEndpoint, c.eonet, "/categories", nil, false, &resp); err != nil {
		return nil, err
	}

	out := make([]models.EventCategory, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		out = append(out, models.EventCategory{ID: rawID(cat.ID), Title: cat.Title, Description: cat.Description})
	}
	return out, nil
}

// rawID accepts the category id as either a JSON string (v3) or number (v2).
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.Itoa(n)
	}
	return ""
}
