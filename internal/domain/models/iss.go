package models

import "time"

// ISSPosition is the current sub-satellite point of the space station.
type ISSPosition struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Astronaut is a person currently in space.
type Astronaut struct {
	Name  string `json:"name"`
	Craft string `json:"craft"`
}

// Crew lists the people currently in space.
type Crew struct {
	Number int         `json:"number"`
	People []Astronaut `json:"people"`
}
