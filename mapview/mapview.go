package mapview

import (
	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/metrics"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"go.uber.org/zap"
)

const noResources = "No resources listed"

type Marker struct {
	HubID      string          `json:"hubId"`
	Title      string          `json:"title"`
	Coordinate hubs.Coordinate `json:"coordinate"`
}

type DetailPanel struct {
	HubID         string   `json:"hubId"`
	Title         string   `json:"title"`
	Location      string   `json:"location"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Resources     []string `json:"resources"`
	AreasCovered  []string `json:"areasCovered"`
	DirectionsURL string   `json:"directionsUrl,omitempty"`
}

type View struct {
	Markers  []Marker     `json:"markers"`
	Detail   *DetailPanel `json:"detail,omitempty"`
	Excluded []string     `json:"excluded,omitempty"`
}

// Render maps hubs and the selected hub ID to markers and an optional detail panel.
// Hubs without a valid coordinate pair get no marker; they are reported in Excluded.
func Render(list []hubs.ReliefHub, selectedID string, platform Platform) View {
	view := View{Markers: make([]Marker, 0, len(list))}

	for _, h := range list {
		c, ok := h.Coordinate()
		if !ok {
			view.Excluded = append(view.Excluded, h.ID)
			metrics.MarkersExcluded.Inc()
			log.Logger().Warn("relief hub excluded from map: invalid coordinates",
				zap.String("hub_id", h.ID),
				zap.String("hub_name", h.HubName))
			continue
		}
		view.Markers = append(view.Markers, Marker{HubID: h.ID, Title: h.HubName, Coordinate: c})

		if selectedID != "" && h.ID == selectedID && view.Detail == nil {
			view.Detail = detail(h, c, platform)
		}
	}

	return view
}

func detail(h hubs.ReliefHub, c hubs.Coordinate, platform Platform) *DetailPanel {
	resources := make([]string, 0, len(h.AidTypes))
	for _, t := range h.AidTypes {
		resources = append(resources, string(t))
	}
	if len(resources) == 0 {
		resources = []string{noResources}
	}

	return &DetailPanel{
		HubID:         h.ID,
		Title:         h.HubName,
		Location:      h.Location,
		Email:         h.Email,
		Phone:         h.Phone,
		Resources:     resources,
		AreasCovered:  append([]string{}, h.AreasCovered...),
		DirectionsURL: DirectionsURL(platform, c),
	}
}
