package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"listings-console/internal/config"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = time.Minute

// Memory is an in-process JSON cache with per-entry expiry. Expired entries are removed
// by the go-cache janitor. Patterns use path.Match syntax, which covers the "prefix:*"
// patterns used with Redis.
type Memory struct {
	items *gocache.Cache
}

func NewMemory() *Memory {
	return &Memory{items: gocache.New(config.DefaultCacheTTL, memoryCleanupInterval)}
}

func (m *Memory) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("memory cache: unexpected value for %s", key)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value for ttl; a non-positive ttl uses the default cache TTL.
func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items.Set(key, b, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *Memory) DeleteByPattern(_ context.Context, pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return err
	}
	for k := range m.items.Items() {
		if ok, _ := path.Match(pattern, k); ok {
			m.items.Delete(k)
		}
	}
	return nil
}

// Len counts unexpired entries.
func (m *Memory) Len() int {
	return len(m.items.Items())
}
