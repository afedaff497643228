package missingpersons

import (
	"strings"
	"time"

	"github.com/acikkaynak/reliefhub-go/hubs"
	masker "github.com/ggwhite/go-masker"
)

const PlaceholderImageURL = "https://via.placeholder.com/100"

type Status string

const (
	StatusAll     Status = "All"
	StatusMissing Status = "Missing"
	StatusFound   Status = "Found"
)

// ParseStatus accepts a filter value; an empty string means All.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusAll, true
	}
	for _, v := range []Status{StatusAll, StatusMissing, StatusFound} {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

type CreateReportRequest struct {
	Name        string         `json:"name" validate:"required"`
	Age         string         `json:"age"`
	LastSeen    string         `json:"lastSeen" validate:"required"`
	Description string         `json:"description"`
	Contact     string         `json:"contact" validate:"required"`
	ImageURL    string         `json:"imageUrl" validate:"omitempty,url"`
	Latitude    hubs.NullFloat `json:"latitude"`
	Longitude   hubs.NullFloat `json:"longitude"`
}

type Report struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Age         string         `json:"age"`
	LastSeen    string         `json:"lastSeen"`
	Description string         `json:"description"`
	Contact     string         `json:"contact"`
	Status      Status         `json:"status"`
	ImageURL    string         `json:"imageUrl"`
	Latitude    hubs.NullFloat `json:"latitude"`
	Longitude   hubs.NullFloat `json:"longitude"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewReport builds a Missing report from req, falling back to the placeholder image.
func NewReport(id string, req CreateReportRequest, now time.Time) Report {
	r := Report{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Age:         strings.TrimSpace(req.Age),
		LastSeen:    strings.TrimSpace(req.LastSeen),
		Description: strings.TrimSpace(req.Description),
		Contact:     strings.TrimSpace(req.Contact),
		Status:      StatusMissing,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
	}
	if r.ImageURL == "" {
		r.ImageURL = PlaceholderImageURL
	}
	if req.Latitude.Valid && req.Longitude.Valid {
		r.Latitude, r.Longitude = req.Latitude, req.Longitude
	}
	return r
}

func (r Report) HasCoordinate() bool {
	return r.Latitude.Valid && r.Longitude.Valid
}

func (r Report) WithCoordinate(c hubs.Coordinate) Report {
	r.Latitude, r.Longitude = hubs.Float(c.Lat), hubs.Float(c.Lng)
	return r
}

// Masked hides the reporter's phone number for public listings.
func (r Report) Masked() Report {
	r.Contact = masker.Telephone(r.Contact)
	return r
}

type Response struct {
	Count   int      `json:"count"`
	Results []Report `json:"results"`
}
