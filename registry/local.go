package registry

import (
	"context"
	"sync"

	"github.com/acikkaynak/reliefhub-go/hubs"
)

// Local is an in-process registry for running the centers screen without a backend.
// Registrations are acknowledged immediately.
type Local struct {
	mu   sync.RWMutex
	hubs []hubs.ReliefHub
}

func NewLocal(seed ...hubs.ReliefHub) *Local {
	return &Local{hubs: append([]hubs.ReliefHub(nil), seed...)}
}

func (l *Local) ListHubs(ctx context.Context) ([]hubs.ReliefHub, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append(make([]hubs.ReliefHub, 0, len(l.hubs)), l.hubs...), nil
}

func (l *Local) RegisterHub(ctx context.Context, hub hubs.ReliefHub) error {
	if err := requireCoordinates(hub); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hubs = append(l.hubs, hub)
	return nil
}
