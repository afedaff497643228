package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/metrics"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/pkg/outbound"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	DefaultMinLength = 4
	DefaultTimeout   = 10 * time.Second

	statusOK = "OK"
)

var (
	ErrNotFound        = errors.New("address not found")
	ErrAddressTooShort = errors.New("address too short to geocode")
	errMissingAPIKey   = errors.New("geocode api key is not configured")
	errMissingEndpoint = errors.New("geocode endpoint is not configured")
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (hubs.Coordinate, error)
}

type response struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Results      []result `json:"results"`
}

type result struct {
	Geometry struct {
		Location hubs.Coordinate `json:"location"`
	} `json:"geometry"`
}

type Client struct {
	baseURL   string
	apiKey    string
	minLength int
	timeout   time.Duration
	http      *fasthttp.Client
}

type Option func(*Client)

func WithMinLength(n int) Option {
	return func(c *Client) { c.minLength = n }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		minLength: DefaultMinLength,
		timeout:   DefaultTimeout,
		http:      outbound.NewClient("reliefhub-geocoder"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadyToGeocode reports whether address is long enough to be worth a lookup.
func ReadyToGeocode(address string, minLength int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(address)) >= minLength
}

// Geocode resolves address to the first result's location. Only an "OK" status with at
// least one result counts as success.
func (c *Client) Geocode(ctx context.Context, address string) (hubs.Coordinate, error) {
	address = strings.TrimSpace(address)
	if !ReadyToGeocode(address, c.minLength) {
		return hubs.Coordinate{}, ErrAddressTooShort
	}
	if c.baseURL == "" {
		return hubs.Coordinate{}, errMissingEndpoint
	}
	if c.apiKey == "" {
		return hubs.Coordinate{}, errMissingAPIKey
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", c.apiKey)

	res, err := outbound.Do(ctx, c.http, c.timeout, func(req *fasthttp.Request) {
		req.Header.SetMethod(fasthttp.MethodGet)
		req.SetRequestURI(c.baseURL + "?" + query.Encode())
	})
	if ctx.Err() != nil {
		return hubs.Coordinate{}, ctx.Err()
	}
	if err != nil {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return hubs.Coordinate{}, fmt.Errorf("could not call geocode api: %w", err)
	}
	if res.StatusCode != fasthttp.StatusOK {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return hubs.Coordinate{}, fmt.Errorf("geocode api responded with status %d", res.StatusCode)
	}

	var body response
	if err := jsoniter.Unmarshal(res.Body, &body); err != nil {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return hubs.Coordinate{}, fmt.Errorf("could not decode geocode response: %w", err)
	}

	if body.Status != statusOK || len(body.Results) == 0 {
		metrics.GeocodeLookups.WithLabelValues("not_found").Inc()
		log.Logger().Debug("geocode returned no result",
			zap.String("address", address),
			zap.String("status", body.Status),
			zap.String("error_message", body.ErrorMessage))
		return hubs.Coordinate{}, fmt.Errorf("%w: status %s", ErrNotFound, body.Status)
	}

	loc := body.Results[0].Geometry.Location
	if !loc.IsFinite() {
		metrics.GeocodeLookups.WithLabelValues("not_found").Inc()
		return hubs.Coordinate{}, fmt.Errorf("%w: non-finite location", ErrNotFound)
	}

	metrics.GeocodeLookups.WithLabelValues("ok").Inc()
	return loc, nil
}
