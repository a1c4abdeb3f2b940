// Package itinerary decodes the model's JSON-shaped replies into map data.
// The model is only instructed to produce these shapes, so every decode is
// fallible and callers degrade instead of failing the request.
package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Annallisboa/QA-app/internal/model"
)

// MalformedOutputError reports a reply that did not decode to the expected
// shape.
type MalformedOutputError struct {
	Field  string
	Reason string
	Raw    string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed %s output: %s: %.120q", e.Field, e.Reason, e.Raw)
}

// Coordinates mirrors the mapping stage's document.
type Coordinates struct {
	Days []model.Day `json:"days"`
}

// Points returns every valid coordinate pair in day order.
func (c *Coordinates) Points() []model.LatLon {
	if c == nil {
		return nil
	}
	var pts []model.LatLon
	for _, m := range c.Markers() {
		pts = append(pts, m.LatLon)
	}
	return pts
}

// Markers returns every location with an in-range coordinate pair.
func (c *Coordinates) Markers() []model.Marker {
	if c == nil {
		return nil
	}
	var markers []model.Marker
	for _, d := range c.Days {
		for _, loc := range d.Locations {
			p := model.LatLon{Lat: loc.Lat, Lon: loc.Lon}
			if !p.Valid() {
				continue
			}
			markers = append(markers, model.Marker{LatLon: p, Name: loc.Name, Address: loc.Address})
		}
	}
	return markers
}

// CenterInfo mirrors the center stage's document.
type CenterInfo struct {
	Center model.LatLon
	Zoom   int
}

type centerDoc struct {
	Center []float64 `json:"center"`
	Zoom   *float64  `json:"zoom"`
}

// Zoom levels accepted from the model.
const (
	MinZoom = 1
	MaxZoom = 19
)

// DecodeCoordinates parses the coordinates field.
func DecodeCoordinates(raw string) (*Coordinates, error) {
	var out *Coordinates
	found := extractJSON(raw, func(candidate []byte) bool {
		var c Coordinates
		if json.Unmarshal(candidate, &c) != nil || c.Days == nil {
			return false
		}
		out = &c
		return true
	})
	if !found {
		return nil, &MalformedOutputError{Field: model.FieldCoordinates, Reason: `no JSON object with a "days" list`, Raw: raw}
	}
	return out, nil
}

// DecodeCenter parses the center_info field.
func DecodeCenter(raw string) (*CenterInfo, error) {
	var doc centerDoc
	found := extractJSON(raw, func(candidate []byte) bool {
		var d centerDoc
		if json.Unmarshal(candidate, &d) != nil || d.Center == nil || d.Zoom == nil {
			return false
		}
		doc = d
		return true
	})
	if !found {
		return nil, &MalformedOutputError{Field: model.FieldCenterInfo, Reason: `no JSON object with "center" and "zoom"`, Raw: raw}
	}
	if len(doc.Center) != 2 {
		return nil, &MalformedOutputError{Field: model.FieldCenterInfo, Reason: "center must be [lat, lon]", Raw: raw}
	}

	info := &CenterInfo{
		Center: model.LatLon{Lat: doc.Center[0], Lon: doc.Center[1]},
		Zoom:   int(*doc.Zoom),
	}
	if !info.Center.Valid() {
		return nil, &MalformedOutputError{Field: model.FieldCenterInfo, Reason: "center out of range", Raw: raw}
	}
	if info.Zoom < MinZoom || info.Zoom > MaxZoom {
		return nil, &MalformedOutputError{Field: model.FieldCenterInfo, Reason: fmt.Sprintf("zoom %d out of range", info.Zoom), Raw: raw}
	}
	return info, nil
}

// extractJSON offers decode, in order: the whole text, the first "{" to the
// last "}", and the contents of a fenced code block. It stops at the first
// candidate decode accepts.
func extractJSON(text string, decode func([]byte) bool) bool {
	text = strings.TrimSpace(text)

	try := func(candidate string) bool {
		return candidate != "" && decode([]byte(candidate))
	}

	if try(text) {
		return true
	}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			if try(text[start : end+1]) {
				return true
			}
		}
	}

	for _, fence := range []string{"```json", "```"} {
		if idx := strings.Index(text, fence); idx >= 0 {
			after := text[idx+len(fence):]
			if end := strings.Index(after, "```"); end >= 0 {
				if try(strings.TrimSpace(after[:end])) {
					return true
				}
			}
		}
	}

	return false
}
