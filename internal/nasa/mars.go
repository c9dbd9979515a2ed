package nasa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/guttosm/astropulse/internal/domain/models"
)

const (
	marsEndpoint = "mars_photos"

	// DefaultRover is used when a query names no rover.
	DefaultRover = "perseverance"
)

type wireMarsPhoto struct {
	ID     int    `json:"id"`
	Sol    int    `json:"sol"`
	ImgSrc string `json:"img_src"`
	Earth  string `json:"earth_date"`
	Camera struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	} `json:"camera"`
	Rover struct {
		Name string `json:"name"`
	} `json:"rover"`
}

// MarsPhotos lists rover photos for a sol or an Earth date. With neither set
// the rover's latest photos are returned.
func (c *Client) MarsPhotos(ctx context.Context, q models.MarsPhotoQuery) ([]models.MarsPhoto, error) {
	rover := q.Rover
	if rover == "" {
		rover = DefaultRover
	}
	params := url.Values{}
	if q.Camera != "" {
		params.Set("camera", q.Camera)
	}

	var (
		path   string
		photos []wireMarsPhoto
	)
	if q.Sol == nil && q.EarthDate == "" {
		path = fmt.Sprintf("/mars-photos/api/v1/rovers/%s/latest_photos", url.PathEscape(rover))
		var resp struct {
			LatestPhotos []wireMarsPhoto `json:"latest_photos"`
		}
		if err := c.getJSON(ctx, marsEndpoint, c.nasaAPI, path, params, true, &resp); err != nil {
			return nil, err
		}
		photos = resp.LatestPhotos
	} else {
		if q.Sol != nil {
			params.Set("sol", strconv.Itoa(*q.Sol))
		}
		if q.EarthDate != "" {
			params.Set("earth_date", q.EarthDate)
		}
		path = fmt.Sprintf("/mars-photos/api/v1/rovers/%s/photos", url.PathEscape(rover))
		var resp struct {
			Photos []wireMarsPhoto `json:"photos"`
		}
		if err := c.getJSON(ctx, marsEndpoint, c.nasaAPI, path, params, true, &resp); err != nil {
			return nil, err
		}
		photos = resp.Photos
	}

	out := make([]models.MarsPhoto, 0, len(photos))
	for _, p := range photos {
		out = append(out, models.MarsPhoto{
			NasaID:     strconv.Itoa(p.ID),
			Sol:        p.Sol,
			RoverName:  p.Rover.Name,
			CameraName: p.Camera.Name,
			CameraFull: p.Camera.FullName,
			ImageURL:   p.ImgSrc,
			EarthDate:  p.Earth,
		})
	}
	return out, nil
}
