package mapview

import (
	"fmt"

	"github.com/acikkaynak/reliefhub-go/hubs"
)

type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Opener hands a deep link to the platform.
type Opener interface {
	Open(link string) error
}

type OpenerFunc func(link string) error

func (f OpenerFunc) Open(link string) error {
	return f(link)
}

func DirectionsURL(platform Platform, c hubs.Coordinate) string {
	switch platform {
	case PlatformAndroid:
		return "google.navigation:q=" + c.String()
	case PlatformIOS:
		return "maps://?daddr=" + c.String()
	default:
		return "https://www.google.com/maps/dir/?api=1&destination=" + c.String()
	}
}

// OpenDirections opens turn-by-turn directions to hub. A failure is returned for the
// caller to report; it is never fatal.
func OpenDirections(opener Opener, platform Platform, hub hubs.ReliefHub) error {
	c, ok := hub.Coordinate()
	if !ok {
		return hubs.ErrUnresolvedCoordinates
	}
	if err := opener.Open(DirectionsURL(platform, c)); err != nil {
		return fmt.Errorf("could not open directions to %s: %w", hub.HubName, err)
	}
	return nil
}
