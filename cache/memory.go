package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 10 * time.Minute

// Memory is a process-local Cache used when no redis address is configured.
type Memory struct {
	items *gocache.Cache
}

func NewMemory() *Memory {
	return &Memory{items: gocache.New(gocache.NoExpiration, memoryCleanupInterval)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	v, ok := m.items.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// SetKey stores a copy of value. A ttl of zero or less never expires.
func (m *Memory) SetKey(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.items.Set(key, append([]byte(nil), value...), ttl)
}

func (m *Memory) Delete(keys ...string) error {
	for _, k := range keys {
		m.items.Delete(k)
	}
	return nil
}

func (m *Memory) DeletePrefix(prefix string) error {
	for k := range m.items.Items() {
		if strings.HasPrefix(k, prefix) {
			m.items.Delete(k)
		}
	}
	return nil
}

func (m *Memory) Prune() error {
	m.items.Flush()
	return nil
}
