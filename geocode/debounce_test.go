package geocode

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGeocoder struct {
	mu    sync.Mutex
	calls []string
	block chan struct{}
}

func (g *recordingGeocoder) Geocode(ctx context.Context, address string) (hubs.Coordinate, error) {
	g.mu.Lock()
	g.calls = append(g.calls, address)
	block := g.block
	g.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return hubs.Coordinate{}, ctx.Err()
		}
	}
	return hubs.Coordinate{Lat: 13.08, Lng: 80.27}, nil
}

func (g *recordingGeocoder) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

type resultSink struct {
	ch chan string
}

func (s resultSink) fn(address string, _ hubs.Coordinate, err error) {
	if err == nil {
		s.ch <- address
	}
}

func TestDebouncerKeepsLatestInput(t *testing.T) {
	g := &recordingGeocoder{}
	sink := resultSink{ch: make(chan string, 4)}
	d := NewDebouncer(g, 30*time.Millisecond, DefaultMinLength, sink.fn)
	defer d.Close()

	for _, keystroke := range []string{"C", "Ch", "Che", "Chen", "Chenn", "Chennai"} {
		d.Submit(keystroke)
	}

	select {
	case got := <-sink.ch:
		assert.Equal(t, "Chennai", got)
	case <-time.After(2 * time.Second):
		t.Fatal("no geocode result delivered")
	}
	assert.Equal(t, []string{"Chennai"}, g.Calls())
}

func TestDebouncerNeverCallsForShortInput(t *testing.T) {
	g := &recordingGeocoder{}
	sink := resultSink{ch: make(chan string, 1)}
	d := NewDebouncer(g, time.Millisecond, DefaultMinLength, sink.fn)

	d.Submit("abc")
	d.Submit(" ab ")
	time.Sleep(50 * time.Millisecond)
	d.Close()

	assert.Empty(t, g.Calls())
	assert.Len(t, sink.ch, 0)
}

func TestDebouncerShortInputCancelsPending(t *testing.T) {
	g := &recordingGeocoder{}
	sink := resultSink{ch: make(chan string, 1)}
	d := NewDebouncer(g, 40*time.Millisecond, DefaultMinLength, sink.fn)

	d.Submit("Chennai")
	d.Submit("Ch")
	time.Sleep(100 * time.Millisecond)
	d.Close()

	assert.Empty(t, g.Calls())
}

func TestDebouncerSupersedesInFlight(t *testing.T) {
	g := &recordingGeocoder{block: make(chan struct{})}
	sink := resultSink{ch: make(chan string, 4)}
	d := NewDebouncer(g, time.Millisecond, DefaultMinLength, sink.fn)
	defer d.Close()

	d.Submit("Madurai")
	require.Eventually(t, func() bool { return len(g.Calls()) == 1 }, time.Second, 5*time.Millisecond)

	g.mu.Lock()
	g.block = nil
	g.mu.Unlock()
	d.Submit("Chennai")

	select {
	case got := <-sink.ch:
		assert.Equal(t, "Chennai", got)
	case <-time.After(2 * time.Second):
		t.Fatal("no geocode result delivered")
	}
	assert.Equal(t, []string{"Madurai", "Chennai"}, g.Calls())
}

func TestDebouncerIgnoresSubmitAfterClose(t *testing.T) {
	g := &recordingGeocoder{}
	d := NewDebouncer(g, time.Millisecond, DefaultMinLength, func(string, hubs.Coordinate, error) {})
	d.Close()

	d.Submit("Chennai")
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, g.Calls())
}

type stuckGeocoder struct {
	started chan struct{}
	release chan struct{}
}

// Geocode ignores ctx and waits for release.
func (g *stuckGeocoder) Geocode(context.Context, string) (hubs.Coordinate, error) {
	close(g.started)
	<-g.release
	return hubs.Coordinate{Lat: 13.08, Lng: 80.27}, nil
}

func TestDebouncerCloseDoesNotWaitForStuckLookup(t *testing.T) {
	g := &stuckGeocoder{started: make(chan struct{}), release: make(chan struct{})}
	sink := resultSink{ch: make(chan string, 1)}
	d := NewDebouncer(g, time.Millisecond, DefaultMinLength, sink.fn)

	d.Submit("Chennai")
	select {
	case <-g.started:
	case <-time.After(time.Second):
		t.Fatal("lookup never started")
	}

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a running lookup")
	}

	close(g.release)
	select {
	case got := <-sink.ch:
		t.Fatalf("result %q delivered after Close", got)
	case <-time.After(50 * time.Millisecond):
	}
}
