package hubs

import (
	"strings"

	"github.com/acikkaynak/reliefhub-go/pkg/validation"
)

// Draft is the registration form before it is confirmed.
type Draft struct {
	HubName      string           `json:"hubName" validate:"required"`
	Email        string           `json:"email" validate:"required,email"`
	Phone        string           `json:"phone" validate:"required"`
	Location     string           `json:"location" validate:"required"`
	AreasCovered string           `json:"areasCovered"`
	AidTypes     map[AidType]bool `json:"aidTypes"`
}

// Toggle flips t and returns the updated draft; unknown aid types are ignored.
func (d Draft) Toggle(t AidType) Draft {
	if _, ok := ParseAidType(string(t)); !ok {
		return d
	}
	toggled := make(map[AidType]bool, len(d.AidTypes)+1)
	for k, v := range d.AidTypes {
		toggled[k] = v
	}
	toggled[t] = !toggled[t]
	d.AidTypes = toggled
	return d
}

// SelectedAidTypes returns toggled-on aid types in vocabulary order.
func (d Draft) SelectedAidTypes() AidTypes {
	out := AidTypes{}
	for _, t := range AidTypeVocabulary {
		if d.AidTypes[t] {
			out = append(out, t)
		}
	}
	return out
}

func (d Draft) normalized() Draft {
	d.HubName = strings.TrimSpace(d.HubName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Location = strings.TrimSpace(d.Location)
	return d
}

// Validate checks required fields; failures wrap ErrValidation.
func (d Draft) Validate() error {
	return validation.Struct(d.normalized())
}

// Build turns a validated draft into a hub positioned at c.
func (d Draft) Build(id string, c Coordinate) ReliefHub {
	d = d.normalized()
	return ReliefHub{
		ID:           id,
		HubName:      d.HubName,
		Email:        d.Email,
		Phone:        d.Phone,
		Location:     d.Location,
		AreasCovered: ParseAreas(d.AreasCovered),
		AidTypes:     d.SelectedAidTypes(),
	}.WithCoordinate(c)
}
