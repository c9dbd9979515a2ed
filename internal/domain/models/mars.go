package models

// MarsPhoto is a rover image returned by the Mars Rover Photos API.
type MarsPhoto struct {
	NasaID     string `json:"id"`
	Sol        int    `json:"sol"`
	RoverName  string `json:"rover"`
	CameraName string `json:"camera"`
	CameraFull string `json:"camera_full_name,omitempty"`
	ImageURL   string `json:"img_src"`
	EarthDate  string `json:"earth_date"`
}

// MarsPhotoQuery selects rover photos. Sol and EarthDate are optional;
// upstream returns the latest sol when neither is set.
type MarsPhotoQuery struct {
	Rover     string `form:"rover" validate:"omitempty,oneof=perseverance curiosity opportunity spirit"`
	Sol       *int   `form:"sol" validate:"omitempty,min=0"`
	EarthDate string `form:"earth_date" validate:"omitempty,datetime=2006-01-02"`
	Camera    string `form:"camera" validate:"omitempty,alphanum,max=16"`
}
