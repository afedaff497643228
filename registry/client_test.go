package registry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acikkaynak/reliefhub-go/hubs"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chennaiHub() hubs.ReliefHub {
	return hubs.ReliefHub{
		ID:           "hub-1",
		HubName:      "Central Camp",
		Email:        "a@b.com",
		Phone:        "555",
		Location:     "Chennai",
		AreasCovered: hubs.AreaList{"Zone 1"},
		AidTypes:     hubs.AidTypes{hubs.AidWater},
	}.WithCoordinate(hubs.Coordinate{Lat: 13.08, Lng: 80.27})
}

func TestListHubs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, ListPath, r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"1","hubName":"North","latitude":9.9,"longitude":78.1},
			{"id":"2","hubName":"Broken","latitude":"NaN","longitude":78.1}]`))
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL+"/", time.Second).ListHubs(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "North", list[0].HubName)
	assert.False(t, list[1].Latitude.Valid)
}

func TestListHubsSkipsUndecodableEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1","hubName":"North"},
			{"id":"2","hubName":"Bad aid","aidTypes":"Food"},
			{"id":"3","hubName":"Bad areas","areasCovered":42},
			{"id":"4","hubName":"South","areasCovered":"Zone 1, Zone 2"}]`))
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL, time.Second).ListHubs(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "4", list[1].ID)
	assert.Equal(t, hubs.AreaList{"Zone 1", "Zone 2"}, list[1].AreasCovered)
}

func TestListHubsRejectsNonArrayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"maintenance"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).ListHubs(context.Background())
	assert.True(t, errors.Is(err, hubs.ErrListFailed))
}

func TestListHubsTimeoutIsNotRetried(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient(srv.URL, 200*time.Millisecond).ListHubs(context.Background())

	assert.True(t, errors.Is(err, hubs.ErrListFailed))
	assert.Less(t, time.Since(start), time.Second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestListHubsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).ListHubs(context.Background())
	assert.True(t, errors.Is(err, hubs.ErrListFailed))

	srv.Close()
	_, err = NewClient(srv.URL, time.Second).ListHubs(context.Background())
	assert.True(t, errors.Is(err, hubs.ErrListFailed))
}

func TestRegisterHub(t *testing.T) {
	var received hubs.ReliefHub
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, RegisterPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(APIKeyHeader))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, jsoniter.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, WithAPIKey("secret"))
	require.NoError(t, client.RegisterHub(context.Background(), chennaiHub()))
	assert.Equal(t, chennaiHub(), received)
}

func TestRegisterHubRejected(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusBadRequest, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		err := NewClient(srv.URL, time.Second).RegisterHub(context.Background(), chennaiHub())
		assert.True(t, errors.Is(err, hubs.ErrRegistrationFailed), "status %d", status)
		srv.Close()
	}
}

func TestRegisterHubNeverSendsUnresolvedCoordinates(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	hub := chennaiHub()
	hub.Longitude = hubs.NullFloat{}

	err := NewClient(srv.URL, time.Second).RegisterHub(context.Background(), hub)
	assert.ErrorIs(t, err, hubs.ErrUnresolvedCoordinates)
	assert.EqualValues(t, 0, atomic.LoadInt32(&hits))
}

func TestLocalRegistry(t *testing.T) {
	local := NewLocal()
	ctx := context.Background()

	unresolved := chennaiHub()
	unresolved.Latitude = hubs.NullFloat{}
	assert.ErrorIs(t, local.RegisterHub(ctx, unresolved), hubs.ErrUnresolvedCoordinates)

	require.NoError(t, local.RegisterHub(ctx, chennaiHub()))
	list, err := local.ListHubs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []hubs.ReliefHub{chennaiHub()}, list)

	list[0].HubName = "mutated"
	again, _ := local.ListHubs(ctx)
	assert.Equal(t, "Central Camp", again[0].HubName)
}
