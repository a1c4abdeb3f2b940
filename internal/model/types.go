package model

// Field names threaded through the pipeline accumulator.
const (
	FieldRequest         = "request"
	FieldAgentSuggestion = "agent_suggestion"
	FieldCoordinates     = "coordinates"
	FieldCenterInfo      = "center_info"
)

// LatLon is a WGS 84 coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the pair lies inside the latitude/longitude ranges.
func (p LatLon) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Location is a single place the model associated with an answer.
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Name    string  `json:"name"`
}

// Day groups the locations the model listed under one day.
type Day struct {
	Day       int        `json:"day"`
	Locations []Location `json:"locations"`
}

// Marker is a location ready to be drawn on the map.
type Marker struct {
	LatLon
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// MapState is the per-session map view owned by the UI shell.
type MapState struct {
	Center  LatLon   `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// Answer is what the UI renders for one question.
type Answer struct {
	Request string   `json:"request"`
	Text    string   `json:"text"`
	Map     MapState `json:"map"`
	// MapAvailable is true when at least one marker was decoded. The center
	// may still be the default if the model's center could not be decoded.
	MapAvailable bool `json:"map_available"`
}
