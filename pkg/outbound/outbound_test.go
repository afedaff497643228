package outbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func slowServer(t *testing.T, delay time.Duration) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		select {
		case <-time.After(delay):
		case <-release:
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	return srv, &hits
}

func get(url string) func(req *fasthttp.Request) {
	return func(req *fasthttp.Request) {
		req.Header.SetMethod(fasthttp.MethodGet)
		req.SetRequestURI(url)
	}
}

func TestDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	res, err := Do(context.Background(), NewClient("test"), time.Second, get(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `{"ok":true}`, string(res.Body))
}

func TestDoTimeoutIsNotRetried(t *testing.T) {
	srv, hits := slowServer(t, 5*time.Second)

	start := time.Now()
	_, err := Do(context.Background(), NewClient("test"), 200*time.Millisecond, get(srv.URL))

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestDoReturnsWhenContextCancelled(t *testing.T) {
	srv, _ := slowServer(t, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := Do(ctx, NewClient("test"), 5*time.Second, get(srv.URL))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDoCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, NewClient("test"), time.Second, func(*fasthttp.Request) {
		t.Fatal("request must not be built")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	d, _ := ctx.Deadline()

	assert.Equal(t, d, Deadline(ctx, time.Hour))
	assert.True(t, Deadline(context.Background(), time.Minute).After(time.Now().Add(50*time.Second)))
}
