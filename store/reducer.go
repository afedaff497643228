package store

import (
	"strings"

	"github.com/acikkaynak/reliefhub-go/hubs"
)

// Reduce returns the state that results from applying a to s. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ListRequested:
		s.seq++

	case HubsListed:
		if a.RequestSeq < s.listedSeq {
			return s
		}
		listed := dedupe(a.Hubs)
		seen := make(map[string]bool, len(listed))
		for _, h := range listed {
			seen[h.ID] = true
		}
		acked := make([]ackedHub, 0, len(s.acked))
		for _, ack := range s.acked {
			if ack.seq > a.RequestSeq && !seen[ack.hub.ID] {
				acked = append(acked, ack)
			}
		}
		s.listed, s.listedSeq, s.acked = listed, a.RequestSeq, acked
		if _, ok := s.SelectedHub(); !ok {
			s.Selected = ""
		}

	case ListFailed:
		s.Notice = &Notice{Kind: NoticeList, Message: "Could not load relief centers.", Err: a.Err}

	case HubRegistered:
		s.seq++
		if !s.displays(a.Hub.ID) {
			acked := make([]ackedHub, 0, len(s.acked)+1)
			acked = append(acked, s.acked...)
			s.acked = append(acked, ackedHub{hub: a.Hub, seq: s.seq})
		}
		s = switchMode(s, ModeMap)
		s = clearDraft(s)

	case RegistrationFailed:
		s.Notice = &Notice{Kind: NoticeRegistration, Message: "Could not register the relief center. Please try again.", Err: a.Err}

	case ValidationFailed:
		s.Notice = &Notice{Kind: NoticeValidation, Message: "Please fill all fields!", Err: a.Err}

	case GeocodeResolved:
		if normalizeAddress(a.Address) == normalizeAddress(s.Draft.Location) && a.Coordinate.IsFinite() {
			c := a.Coordinate
			s.DraftCoordinate = &c
			s.DraftCoordinateFor = normalizeAddress(a.Address)
		}

	case GeocodeFailed:
		if a.Blocking {
			s.Notice = &Notice{Kind: NoticeGeocode, Message: "Invalid address! Please enter a valid location.", Err: a.Err}
		}

	case DraftEdited:
		s.Draft = a.Draft

	case CenterSelected:
		if s.displays(a.ID) {
			s = switchMode(s, ModeMap)
			s.Selected = a.ID
		}

	case SelectionCleared:
		s.Selected = ""

	case ModeChanged:
		s = switchMode(s, a.Mode)

	case DirectionsFailed:
		s.Notice = &Notice{Kind: NoticeDirections, Message: "Could not open directions.", Err: a.Err}

	case NoticeDismissed:
		s.Notice = nil
	}
	return s
}

func (s State) displays(id string) bool {
	for _, h := range s.listed {
		if h.ID == id {
			return true
		}
	}
	for _, a := range s.acked {
		if a.hub.ID == id {
			return true
		}
	}
	return false
}

func switchMode(s State, m Mode) State {
	if m != ModeMap && m != ModeRegister {
		return s
	}
	if s.Mode != m {
		s = clearDraft(s)
	}
	if m == ModeRegister {
		s.Selected = ""
	}
	s.Mode = m
	return s
}

func clearDraft(s State) State {
	s.Draft = hubs.Draft{}
	s.DraftCoordinate = nil
	s.DraftCoordinateFor = ""
	return s
}

// dedupe keeps the first occurrence of every hub ID.
func dedupe(list []hubs.ReliefHub) []hubs.ReliefHub {
	out := make([]hubs.ReliefHub, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, h := range list {
		if h.ID != "" && seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	return out
}

func normalizeAddress(s string) string {
	return strings.TrimSpace(s)
}
