package registry

import (
	"context"

	"github.com/acikkaynak/reliefhub-go/hubs"
)

const (
	ListPath     = "/api/reliefhubs"
	RegisterPath = "/api/reliefhub/register"
	APIKeyHeader = "X-Api-Key"
)

// Registry is the authoritative store of relief hubs the client reconciles against.
type Registry interface {
	ListHubs(ctx context.Context) ([]hubs.ReliefHub, error)
	RegisterHub(ctx context.Context, hub hubs.ReliefHub) error
}

func requireCoordinates(hub hubs.ReliefHub) error {
	if _, ok := hub.Coordinate(); !ok {
		return hubs.ErrUnresolvedCoordinates
	}
	return nil
}
