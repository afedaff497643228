package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultHTTPAddr       = ":80"
	defaultTimeout        = 10 * time.Second
	defaultDebounce       = 500 * time.Millisecond
	defaultMinLength      = 4
	defaultRefreshSpec    = "@every 30s"
)

type CentersMode string

const (
	CentersModeBackend CentersMode = "backend"
	CentersModeLocal   CentersMode = "local"
)

type Config struct {
	Env      string
	HTTPAddr string
	APIKey   string

	DBConnStr     string
	RedisAddr     string
	RedisPassword string
	KafkaBrokers  []string

	GeocodeAPIKey    string
	GeocodeBaseURL   string
	GeocodeMinLength int
	GeocodeDebounce  time.Duration

	RegistryBaseURL string
	RequestTimeout  time.Duration
	HubRefreshSpec  string
	CentersMode     CentersMode

	SMSGatewayURL    string
	SMSGatewayAPIKey string
	EmergencyNumbers []string
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary key lookup.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Env:              get("env", ""),
		HTTPAddr:         get("HTTP_ADDR", defaultHTTPAddr),
		APIKey:           get("ApiKey", ""),
		DBConnStr:        get("DB_CONN_STR", ""),
		RedisAddr:        get("RedisAddr", ""),
		RedisPassword:    get("RedisPassword", ""),
		KafkaBrokers:     splitList(get("KAFKA_BROKERS", "")),
		GeocodeAPIKey:    get("GEOCODE_API_KEY", ""),
		GeocodeBaseURL:   get("GEOCODE_BASE_URL", defaultGeocodeBaseURL),
		RegistryBaseURL:  strings.TrimSuffix(get("REGISTRY_BASE_URL", ""), "/"),
		HubRefreshSpec:   get("HUB_REFRESH_SPEC", defaultRefreshSpec),
		CentersMode:      CentersMode(get("CENTERS_MODE", string(CentersModeBackend))),
		SMSGatewayURL:    get("SMS_GATEWAY_URL", ""),
		SMSGatewayAPIKey: get("SMS_GATEWAY_API_KEY", ""),
		EmergencyNumbers: splitList(get("EMERGENCY_NUMBERS", "")),
	}

	var err error
	if cfg.RequestTimeout, err = time.ParseDuration(get("REQUEST_TIMEOUT", defaultTimeout.String())); err != nil {
		return nil, fmt.Errorf("could not parse REQUEST_TIMEOUT: %w", err)
	}
	if cfg.GeocodeDebounce, err = time.ParseDuration(get("GEOCODE_DEBOUNCE", defaultDebounce.String())); err != nil {
		return nil, fmt.Errorf("could not parse GEOCODE_DEBOUNCE: %w", err)
	}
	if cfg.GeocodeMinLength, err = strconv.Atoi(get("GEOCODE_MIN_LENGTH", strconv.Itoa(defaultMinLength))); err != nil {
		return nil, fmt.Errorf("could not parse GEOCODE_MIN_LENGTH: %w", err)
	}

	switch cfg.CentersMode {
	case CentersModeBackend, CentersModeLocal:
	default:
		return nil, fmt.Errorf("unknown CENTERS_MODE %q", cfg.CentersMode)
	}

	return cfg, nil
}

// RegistryURL returns the registry base URL, failing when backend mode has none.
func (c *Config) RegistryURL() (string, error) {
	if c.CentersMode == CentersModeBackend && c.RegistryBaseURL == "" {
		return "", fmt.Errorf("REGISTRY_BASE_URL must be set when CENTERS_MODE is %q", CentersModeBackend)
	}
	return c.RegistryBaseURL, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
