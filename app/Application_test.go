package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/middleware/auth"
	mwcache "github.com/acikkaynak/reliefhub-go/middleware/cache"
	"github.com/acikkaynak/reliefhub-go/missingpersons"
	"github.com/acikkaynak/reliefhub-go/registry"
	"github.com/acikkaynak/reliefhub-go/repository"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	hubs    []hubs.ReliefHub
	reports []missingpersons.Report
}

func (s *memoryStore) ListHubs(context.Context, *repository.BoundingBox) ([]hubs.ReliefHub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]hubs.ReliefHub{}, s.hubs...), nil
}

func (s *memoryStore) CreateHub(_ context.Context, h hubs.ReliefHub) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hubs = append(s.hubs, h)
	return nil
}

func (s *memoryStore) ListMissingPersons(context.Context, missingpersons.Status) ([]missingpersons.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]missingpersons.Report{}, s.reports...), nil
}

func (s *memoryStore) CreateMissingPerson(_ context.Context, r missingpersons.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	return nil
}

// gatedStore holds CreateHub until release is closed.
type gatedStore struct {
	*memoryStore
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) CreateHub(ctx context.Context, h hubs.ReliefHub) error {
	close(s.entered)
	<-s.release
	return s.memoryStore.CreateHub(ctx, h)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, interface{}) error { return nil }

func request(t *testing.T, a *Application, method, path, body, key string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(auth.ApiKeyHeaderName, key)
	}
	res, err := a.Fiber().Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(res.Body)
	return res, string(b)
}

func TestRegisteredHubAppearsInCachedListing(t *testing.T) {
	store := &memoryStore{}
	a := New(Dependencies{Hubs: store, MissingPersons: store, Publisher: nopPublisher{}, APIKey: "secret"})

	res, body := request(t, a, http.MethodGet, registry.ListPath, "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "[]", body)

	res, body = request(t, a, http.MethodGet, registry.ListPath, "", "")
	assert.Equal(t, "true", res.Header.Get(mwcache.CachedHeader))
	assert.Equal(t, "[]", body)

	hub := `{"id":"h1","hubName":"Central Camp","email":"camp@example.org","phone":"9876543210",` +
		`"location":"Chennai","latitude":13.08,"longitude":80.27,"areasCovered":["Adyar"],"aidTypes":["Food"]}`

	res, _ = request(t, a, http.MethodPost, registry.RegisterPath, hub, "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = request(t, a, http.MethodPost, registry.RegisterPath, hub, "secret")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = request(t, a, http.MethodGet, registry.ListPath, "", "")
	assert.Empty(t, res.Header.Get(mwcache.CachedHeader))
	var list []hubs.ReliefHub
	require.NoError(t, jsoniter.UnmarshalFromString(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "h1", list[0].ID)
}

func TestListingDuringRegistrationIsNotServedStale(t *testing.T) {
	store := &gatedStore{memoryStore: &memoryStore{}, entered: make(chan struct{}), release: make(chan struct{})}
	a := New(Dependencies{Hubs: store, MissingPersons: store, Publisher: nopPublisher{}})

	hub := `{"id":"h1","hubName":"Central Camp","email":"camp@example.org","phone":"9876543210",` +
		`"location":"Chennai","latitude":13.08,"longitude":80.27,"areasCovered":["Adyar"],"aidTypes":["Food"]}`
	registered := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, registry.RegisterPath, strings.NewReader(hub))
		req.Header.Set("Content-Type", "application/json")
		res, err := a.Fiber().Test(req, -1)
		if err != nil {
			registered <- 0
			return
		}
		registered <- res.StatusCode
	}()

	<-store.entered
	res, body := request(t, a, http.MethodGet, registry.ListPath, "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "[]", body)

	close(store.release)
	require.Equal(t, http.StatusOK, <-registered)

	res, body = request(t, a, http.MethodGet, registry.ListPath, "", "")
	assert.Empty(t, res.Header.Get(mwcache.CachedHeader))
	var list []hubs.ReliefHub
	require.NoError(t, jsoniter.UnmarshalFromString(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "h1", list[0].ID)
}

func TestOpsRoutes(t *testing.T) {
	store := &memoryStore{}
	a := New(Dependencies{Hubs: store, MissingPersons: store, Publisher: nopPublisher{}})

	res, _ := request(t, a, http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := request(t, a, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "go_goroutines")

	res, _ = request(t, a, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusPermanentRedirect, res.StatusCode)
	assert.Equal(t, "/swagger/index.html", res.Header.Get("Location"))

	res, _ = request(t, a, http.MethodGet, "/aid-types", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
