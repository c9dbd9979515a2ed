package nasa

import (
	"context"
	"strconv"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
)

const (
	issPositionEndpoint = "iss_position"
	astronautsEndpoint  = "astronauts"
)

// ISSPosition returns the current ground position of the ISS.
func (c *Client) ISSPosition(ctx context.Context) (models.ISSPosition, error) {
	var resp struct {
		Message     string `json:"message"`
		Timestamp   int64  `json:"timestamp"`
		ISSPosition struct {
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"iss_position"`
	}
	if err := c.getJSON(ctx, issPositionEndpoint, c.openNotify, "/iss-now.json", nil, false, &resp); err != nil {
		return models.ISSPosition{}, err
	}
	if resp.Message != "success" {
		return models.ISSPosition{}, malformed(issPositionEndpoint, "unexpected message %q", resp.Message)
	}

	lat, err := strconv.ParseFloat(resp.ISSPosition.Latitude, 64)
	if err != nil {
		return models.ISSPosition{}, malformed(issPositionEndpoint, "latitude: %v", err)
	}
	lon, err := strconv.ParseFloat(resp.ISSPosition.Longitude, 64)
	if err != nil {
		return models.ISSPosition{}, malformed(issPositionEndpoint, "longitude: %v", err)
	}

	return models.ISSPosition{
		Latitude:  lat,
		Longitude: lon,
		Timestamp: time.Unix(resp.Timestamp, 0).UTC(),
	}, nil
}

// Astronauts lists the people currently in space.
func (c *Client) Astronauts(ctx context.Context) (models.Crew, error) {
	var resp struct {
		Message string             `json:"message"`
		Number  int                `json:"number"`
		People  []models.Astronaut `json:"people"`
	}
	if err := c.getJSON(ctx, astronautsEndpoint, c.openNotify, "/astros.json", nil, false, &resp); err != nil {
		return models.Crew{}, err
	}
	if resp.Message != "success" {
		return models.Crew{}, malformed(astronautsEndpoint, "unexpected message %q", resp.Message)
	}
	return models.Crew{Number: resp.Number, People: resp.People}, nil
}
