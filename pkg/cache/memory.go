package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryItem stores cached value with expiration.
type MemoryItem struct {
	Value    []byte
	ExpireAt time.Time
}

// IsExpired checks if item has expired at the given instant.
func (m *MemoryItem) IsExpired(now time.Time) bool {
	return now.After(m.ExpireAt)
}

// MemoryCache implements Service using an in-process map.
// Staleness is only checked on read; nothing is evicted in the background
// and the map is not size bounded.
type MemoryCache struct {
	data  map[string]*MemoryItem
	mutex sync.RWMutex
	now   func() time.Time
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{Now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	return &MemoryCache{
		data: make(map[string]*MemoryItem),
		now:  cfg.Now,
	}
}

func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	now := mc.now()
	expireAt := now.Add(expiration)
	if expiration <= 0 {
		expireAt = now.Add(7 * 24 * time.Hour) // default 7 days
	}

	item := &MemoryItem{
		Value:    append([]byte(nil), value...),
		ExpireAt: expireAt,
	}

	mc.mutex.Lock()
	mc.data[key] = item
	mc.mutex.Unlock()
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	mc.mutex.RLock()
	item, exists := mc.data[key]
	mc.mutex.RUnlock()

	if !exists {
		return nil, ErrCacheMiss
	}
	if item.IsExpired(mc.now()) {
		mc.mutex.Lock()
		// another writer may have refreshed the key meanwhile
		if cur, ok := mc.data[key]; ok && cur == item {
			delete(mc.data, key)
		}
		mc.mutex.Unlock()
		return nil, ErrCacheMiss
	}

	return append([]byte(nil), item.Value...), nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

// Len reports the number of stored entries, stale ones included.
func (mc *MemoryCache) Len() int {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	return len(mc.data)
}

func (mc *MemoryCache) Close() error {
	return nil
}
