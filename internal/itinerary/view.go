package itinerary

import (
	"io"
	"log/slog"

	"github.com/Annallisboa/QA-app/internal/model"
)

// BuildView turns the three raw stage outputs into what the UI renders. The
// answer text is passed through unchanged. Undecodable coordinates or no
// markers leave the map on the defaults with MapAvailable false; an
// undecodable center keeps the markers but shows them around the default
// center.
func BuildView(logger *slog.Logger, request, suggestion, coordinates, centerInfo string, defaults model.MapState) model.Answer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ans := model.Answer{
		Request: request,
		Text:    suggestion,
		Map: model.MapState{
			Center:  defaults.Center,
			Zoom:    defaults.Zoom,
			Markers: []model.Marker{},
		},
	}

	coords, err := DecodeCoordinates(coordinates)
	if err != nil {
		logger.Warn("markers unavailable", "error", err)
		return ans
	}
	if markers := coords.Markers(); len(markers) > 0 {
		ans.Map.Markers = markers
	}
	if len(ans.Map.Markers) == 0 {
		// The center of an empty set is undefined; keep the defaults.
		return ans
	}
	ans.MapAvailable = true

	center, err := DecodeCenter(centerInfo)
	if err != nil {
		logger.Warn("map center unavailable", "error", err)
		return ans
	}
	ans.Map.Center = center.Center
	ans.Map.Zoom = center.Zoom
	return ans
}
