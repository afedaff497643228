package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/acikkaynak/reliefhub-go/hubs"
)

// ResultFunc receives the outcome of a debounced lookup for address.
type ResultFunc func(address string, c hubs.Coordinate, err error)

// Debouncer geocodes only the latest submitted address. A new submission cancels any
// pending or in-flight lookup, and superseded results are never delivered.
type Debouncer struct {
	geocoder  Geocoder
	delay     time.Duration
	minLength int
	onResult  ResultFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
	closed bool
}

func NewDebouncer(g Geocoder, delay time.Duration, minLength int, onResult ResultFunc) *Debouncer {
	return &Debouncer{
		geocoder:  g,
		delay:     delay,
		minLength: minLength,
		onResult:  onResult,
	}
}

// Submit schedules a lookup for address. Addresses below the minimum length only
// cancel what is pending; the geocoder is not called for them.
func (d *Debouncer) Submit(address string) {
	address = strings.TrimSpace(address)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
	if !ReadyToGeocode(address, d.minLength) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	gen := d.gen

	go func() {
		defer cancel()

		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		c, err := d.geocoder.Geocode(ctx, address)
		if ctx.Err() != nil {
			return
		}

		d.mu.Lock()
		current := gen == d.gen && !d.closed
		d.mu.Unlock()
		if current {
			d.onResult(address, c, err)
		}
	}()
}

// Close cancels outstanding work without waiting for it. A lookup that is still
// running when Close returns never delivers its result.
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.closed = true
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
}
