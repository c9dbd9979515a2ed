package nasa

import (
	"context"
	"net/url"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
)

const apodEndpoint = "apod"

type apodResponse struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

// APOD fetches the Astronomy Picture of the Day. An empty date means today
// (upstream time zone).
func (c *Client) APOD(ctx context.Context, date string) (models.APOD, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}

	var resp apodResponse
	if err := c.getJSON(ctx, apodEndpoint, c.nasaAPI, "/planetary/apod", params, true, &resp); err != nil {
		return models.APOD{}, err
	}
	if resp.Title == "" || resp.URL == "" {
		return models.APOD{}, malformed(apodEndpoint, "missing title or url")
	}
	d, err := time.Parse("2006-01-02", resp.Date)
	if err != nil {
		return models.APOD{}, malformed(apodEndpoint, "invalid date %q", resp.Date)
	}

	return models.APOD{
		Date:        d,
		Title:       resp.Title,
		Explanation: resp.Explanation,
		ImageURL:    resp.URL,
		HDURL:       resp.HDURL,
		MediaType:   resp.MediaType,
		Copyright:   resp.Copyright,
	}, nil
}
