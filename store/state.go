package store

import (
	"github.com/acikkaynak/reliefhub-go/hubs"
)

type Mode string

const (
	ModeMap      Mode = "map"
	ModeRegister Mode = "register"
)

type NoticeKind string

const (
	NoticeValidation   NoticeKind = "validation"
	NoticeGeocode      NoticeKind = "geocode"
	NoticeRegistration NoticeKind = "registration"
	NoticeList         NoticeKind = "list"
	NoticeDirections   NoticeKind = "directions"
)

// Notice is a blocking, user-facing message raised by the last action.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

type ackedHub struct {
	hub hubs.ReliefHub
	seq uint64
}

// State is the immutable view state of the relief centers screen. Always derive a new
// State through Reduce; slices inside are never modified in place.
type State struct {
	Mode     Mode
	Selected string
	Draft    hubs.Draft

	// DraftCoordinate is the resolved position for DraftCoordinateFor.
	DraftCoordinate    *hubs.Coordinate
	DraftCoordinateFor string

	Notice *Notice

	listed    []hubs.ReliefHub
	listedSeq uint64
	acked     []ackedHub
	seq       uint64
}

func Initial() State {
	return State{Mode: ModeMap}
}

// Seq is the sequence number of the most recent list request or acknowledgement.
func (s State) Seq() uint64 {
	return s.seq
}

// Hubs is the displayed list: the latest listing followed by hubs acknowledged since
// that listing was requested and not yet part of it.
func (s State) Hubs() []hubs.ReliefHub {
	out := make([]hubs.ReliefHub, 0, len(s.listed)+len(s.acked))
	out = append(out, s.listed...)
	for _, a := range s.acked {
		out = append(out, a.hub)
	}
	return out
}

// Pending lists hubs acknowledged by the registry but not yet seen in a listing.
func (s State) Pending() []hubs.ReliefHub {
	out := make([]hubs.ReliefHub, 0, len(s.acked))
	for _, a := range s.acked {
		out = append(out, a.hub)
	}
	return out
}

func (s State) SelectedHub() (hubs.ReliefHub, bool) {
	if s.Selected == "" {
		return hubs.ReliefHub{}, false
	}
	for _, h := range s.Hubs() {
		if h.ID == s.Selected {
			return h, true
		}
	}
	return hubs.ReliefHub{}, false
}

// ResolvedDraftCoordinate returns the coordinate resolved for the draft's current location.
func (s State) ResolvedDraftCoordinate() (hubs.Coordinate, bool) {
	if s.DraftCoordinate == nil || s.DraftCoordinateFor != normalizeAddress(s.Draft.Location) {
		return hubs.Coordinate{}, false
	}
	return *s.DraftCoordinate, true
}
