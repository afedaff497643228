package cache

import (
	"sync"
	"time"

	"github.com/acikkaynak/reliefhub-go/cache"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTTL   = 5 * time.Minute
	CachedHeader = "x-cached-response"
	keyPrefix    = "cache:"
)

type Config struct {
	Cache cache.Cache
	TTL   time.Duration
	// Skip lists paths that are never cached.
	Skip []string
	// Related maps a write path to the read paths whose cached entries it invalidates.
	Related map[string][]string
}

// PathPrefix is the key prefix shared by every cached response for path.
func PathPrefix(path string) string {
	return keyPrefix + path + ":"
}

func Key(path, originalURL string) string {
	return PathPrefix(path) + uuid.NewSHA1(uuid.NameSpaceOID, []byte(originalURL)).String()
}

// generations counts writes per path. A listing is stored only when no write to its
// path started or finished while it was being built.
type generations struct {
	mu sync.Mutex
	n  map[string]uint64
}

func (g *generations) get(path string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n[path]
}

func (g *generations) bump(paths []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range paths {
		g.n[p]++
	}
}

func New(cfg Config) fiber.Handler {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	skip := map[string]bool{"/healthcheck": true, "/metrics": true, "/monitor": true}
	for _, p := range cfg.Skip {
		skip[p] = true
	}
	gens := &generations{n: map[string]uint64{}}

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if skip[path] {
			return c.Next()
		}

		if c.Method() != fiber.MethodGet {
			affected := append([]string{path}, cfg.Related[path]...)
			gens.bump(affected)
			err := c.Next()
			if code := c.Response().StatusCode(); err != nil || code < 200 || code > 299 {
				return err
			}
			// Evict once the write is visible, then fence off listings built before it.
			for _, p := range affected {
				if err := cfg.Cache.DeletePrefix(PathPrefix(p)); err != nil {
					log.Logger().Warn("could not evict cached responses", zap.String("path", p), zap.Error(err))
				}
			}
			gens.bump(affected)
			return nil
		}

		key := Key(path, c.OriginalURL())
		if data, ok := cfg.Cache.Get(key); ok {
			c.Set(CachedHeader, "true")
			c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
			return c.Send(data)
		}

		gen := gens.get(path)
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusOK && len(c.Response().Body()) > 0 && gens.get(path) == gen {
			cfg.Cache.SetKey(key, c.Response().Body(), cfg.TTL)
		}
		return nil
	}
}
