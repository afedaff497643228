package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acikkaynak/reliefhub-go/hubs"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/pkg/outbound"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote relief hub registry over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *fasthttp.Client
}

type Option func(*Client)

// WithAPIKey sends key in the X-Api-Key header on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		http:    outbound.NewClient("reliefhub-registry"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListHubs fetches every hub. Entries that cannot be decoded are skipped and logged;
// the rest of the listing is still returned.
func (c *Client) ListHubs(ctx context.Context) ([]hubs.ReliefHub, error) {
	res, err := c.do(ctx, func(req *fasthttp.Request) {
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set(fasthttp.HeaderAccept, "application/json")
		req.SetRequestURI(c.baseURL + ListPath)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hubs.ErrListFailed, err)
	}
	if res.StatusCode != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: registry responded with status %d", hubs.ErrListFailed, res.StatusCode)
	}

	var raw []jsoniter.RawMessage
	if err := jsoniter.Unmarshal(res.Body, &raw); err != nil {
		return nil, fmt.Errorf("%w: could not decode hub list: %v", hubs.ErrListFailed, err)
	}

	list := make([]hubs.ReliefHub, 0, len(raw))
	for i, entry := range raw {
		var hub hubs.ReliefHub
		if err := jsoniter.Unmarshal(entry, &hub); err != nil {
			log.Logger().Warn("skipping undecodable relief hub",
				zap.Int("index", i),
				zap.String("payload", string(entry)),
				zap.Error(err))
			continue
		}
		list = append(list, hub)
	}
	return list, nil
}

// RegisterHub submits hub and succeeds only when the registry answers 200.
func (c *Client) RegisterHub(ctx context.Context, hub hubs.ReliefHub) error {
	if err := requireCoordinates(hub); err != nil {
		return err
	}

	payload, err := jsoniter.Marshal(hub)
	if err != nil {
		return fmt.Errorf("could not encode relief hub: %w", err)
	}

	res, err := c.do(ctx, func(req *fasthttp.Request) {
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.SetRequestURI(c.baseURL + RegisterPath)
		req.SetBody(payload)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", hubs.ErrRegistrationFailed, err)
	}
	if res.StatusCode != fasthttp.StatusOK {
		return fmt.Errorf("%w: registry responded with status %d: %s",
			hubs.ErrRegistrationFailed, res.StatusCode, strings.TrimSpace(string(res.Body)))
	}
	return nil
}

func (c *Client) do(ctx context.Context, prepare func(req *fasthttp.Request)) (outbound.Response, error) {
	return outbound.Do(ctx, c.http, c.timeout, func(req *fasthttp.Request) {
		prepare(req)
		if c.apiKey != "" {
			req.Header.Set(APIKeyHeader, c.apiKey)
		}
	})
}
