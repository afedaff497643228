package store

import (
	"github.com/acikkaynak/reliefhub-go/hubs"
)

type Action interface {
	action()
}

// ListRequested marks the start of a listing; the resulting State.Seq identifies it.
type ListRequested struct{}

type HubsListed struct {
	Hubs       []hubs.ReliefHub
	RequestSeq uint64
}

type ListFailed struct {
	Err error
}

// HubRegistered is dispatched only after the registry acknowledged the hub.
type HubRegistered struct {
	Hub hubs.ReliefHub
}

type RegistrationFailed struct {
	Err error
}

type ValidationFailed struct {
	Err error
}

type GeocodeResolved struct {
	Address    string
	Coordinate hubs.Coordinate
}

type GeocodeFailed struct {
	Address string
	Err     error
	// Blocking raises a notice; background lookups while typing stay silent.
	Blocking bool
}

type DraftEdited struct {
	Draft hubs.Draft
}

type CenterSelected struct {
	ID string
}

type SelectionCleared struct{}

type ModeChanged struct {
	Mode Mode
}

type DirectionsFailed struct {
	Err error
}

type NoticeDismissed struct{}

func (ListRequested) action()      {}
func (HubsListed) action()         {}
func (ListFailed) action()         {}
func (HubRegistered) action()      {}
func (RegistrationFailed) action() {}
func (ValidationFailed) action()   {}
func (GeocodeResolved) action()    {}
func (GeocodeFailed) action()      {}
func (DraftEdited) action()        {}
func (CenterSelected) action()     {}
func (SelectionCleared) action()   {}
func (ModeChanged) action()        {}
func (DirectionsFailed) action()   {}
func (NoticeDismissed) action()    {}
