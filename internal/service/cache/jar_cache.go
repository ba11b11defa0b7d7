package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"AvkuWeb/internal/domain/models"
	pkgcache "AvkuWeb/pkg/cache"
	"AvkuWeb/pkg/logger"
)

const DefaultTTL = 60 * time.Second

// JarCache stores resolved jars in a cache.Service, one namespace per source.
// Backend failures degrade to misses so a broken cache never fails a lookup.
type JarCache struct {
	store pkgcache.Service
	ttl   time.Duration
	log   *logger.Logger
}

// NewJarCache wraps store. ttl <= 0 uses DefaultTTL.
func NewJarCache(store pkgcache.Service, ttl time.Duration, log *logger.Logger) *JarCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &JarCache{store: store, ttl: ttl, log: log}
}

// TTL returns how long an entry stays fresh.
func (c *JarCache) TTL() time.Duration {
	return c.ttl
}

func key(namespace, sendID string) string {
	return pkgcache.GenerateKeyWithParams("jar", namespace, sendID)
}

// Get returns a fresh jar for sendID, if any.
func (c *JarCache) Get(ctx context.Context, namespace, sendID string) (*models.Jar, bool) {
	b, err := c.store.Get(ctx, key(namespace, sendID))
	if err != nil {
		if !errors.Is(err, pkgcache.ErrCacheMiss) {
			c.log.Warn("jar cache read failed",
				logger.String("namespace", namespace),
				logger.String("send_id", sendID),
				logger.Error(err),
			)
		}
		return nil, false
	}

	var j models.Jar
	if err := json.Unmarshal(b, &j); err != nil {
		c.log.Warn("jar cache entry corrupt", logger.String("send_id", sendID), logger.Error(err))
		return nil, false
	}
	return &j, true
}

// Set stores j for TTL().
func (c *JarCache) Set(ctx context.Context, namespace, sendID string, j *models.Jar) error {
	b, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key(namespace, sendID), b, c.ttl)
}

