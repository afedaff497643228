package helprequests

import (
	"fmt"
	"strings"
	"time"
)

const noDetails = "No additional details provided."

type CreateHelpRequest struct {
	Address       string `json:"address" validate:"required"`
	EmergencyType string `json:"emergencyType" validate:"required"`
	Priority      string `json:"priority" validate:"required"`
	Message       string `json:"message"`
}

type HelpRequest struct {
	ID            string    `json:"id"`
	Address       string    `json:"address"`
	EmergencyType string    `json:"emergencyType"`
	Priority      string    `json:"priority"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}

func New(id string, req CreateHelpRequest, now time.Time) HelpRequest {
	return HelpRequest{
		ID:            id,
		Address:       strings.TrimSpace(req.Address),
		EmergencyType: strings.TrimSpace(req.EmergencyType),
		Priority:      strings.TrimSpace(req.Priority),
		Message:       strings.TrimSpace(req.Message),
		CreatedAt:     now,
	}
}

// SMSBody renders the text sent to every emergency number.
func (r HelpRequest) SMSBody() string {
	message := r.Message
	if message == "" {
		message = noDetails
	}
	return fmt.Sprintf("🚨 Emergency Help Request 🚨\nLocation: %s\nType: %s\nPriority: %s\nMessage: %s",
		r.Address, r.EmergencyType, r.Priority, message)
}

type Accepted struct {
	ID string `json:"id"`
}
