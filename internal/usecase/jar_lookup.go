package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AvkuWeb/internal/domain/models"
	drepo "AvkuWeb/internal/domain/repository"
	"AvkuWeb/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const (
	SourceAPI    = "api"
	SourceScrape = "scrape"
)

// readiness is implemented by sources that can tell up front they lack configuration.
type readiness interface {
	Ready() error
}

// JarLookup resolves jars through a per-source cache. Concurrent misses for the
// same jar share one upstream call.
type JarLookup struct {
	sources  map[string]drepo.JarSource
	cache    drepo.JarCache
	recorder *SnapshotRecorder
	metrics  drepo.Metrics
	log      *logger.Logger
	fallback bool
	group    singleflight.Group
}

// NewJarLookup wires the API and scrape sources. Either may be nil when disabled.
// With fallbackScrape the API source falls back to scraping on configuration or upstream errors.
func NewJarLookup(
	api drepo.JarSource,
	scrape drepo.JarSource,
	cache drepo.JarCache,
	recorder *SnapshotRecorder,
	metrics drepo.Metrics,
	log *logger.Logger,
	fallbackScrape bool,
) *JarLookup {
	if log == nil {
		log = logger.Nop()
	}
	sources := make(map[string]drepo.JarSource, 2)
	if api != nil {
		sources[SourceAPI] = api
	}
	if scrape != nil {
		sources[SourceScrape] = scrape
	}
	return &JarLookup{
		sources:  sources,
		cache:    cache,
		recorder: recorder,
		metrics:  metrics,
		log:      log,
		fallback: fallbackScrape && scrape != nil,
	}
}

// Resolve returns the jar sendID from the named source, served from cache when fresh.
func (u *JarLookup) Resolve(ctx context.Context, source, sendID string) (*models.Jar, error) {
	if sendID == "" {
		return nil, models.ErrMissingSendID
	}

	src, ok := u.sources[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownSource, source)
	}

	if r, ok := src.(readiness); ok {
		if err := r.Ready(); err != nil {
			if u.shouldFallback(source, err) {
				return u.fallbackScrape(ctx, sendID, err)
			}
			u.metrics.RecordLookup(source, "not_configured")
			return nil, err
		}
	}

	j, err := u.cached(ctx, src, sendID)
	if err != nil && u.shouldFallback(source, err) {
		return u.fallbackScrape(ctx, sendID, err)
	}
	return j, err
}

func (u *JarLookup) cached(ctx context.Context, src drepo.JarSource, sendID string) (*models.Jar, error) {
	ns := src.Name()
	if j, ok := u.cache.Get(ctx, ns, sendID); ok {
		u.metrics.RecordCache(ns, true)
		u.metrics.RecordLookup(ns, "cached")
		return j, nil
	}
	u.metrics.RecordCache(ns, false)

	ch := u.group.DoChan(ns+":"+sendID, func() (interface{}, error) {
		// The shared call outlives any single waiter; sources bound their own duration.
		return u.fetch(context.WithoutCancel(ctx), src, sendID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Jar), nil
	}
}

func (u *JarLookup) fetch(ctx context.Context, src drepo.JarSource, sendID string) (*models.Jar, error) {
	ns := src.Name()
	start := time.Now()

	j, err := src.FetchJar(ctx, sendID)
	u.metrics.RecordLatency("lookup_"+ns, time.Since(start).Seconds())
	if err != nil {
		u.metrics.RecordLookup(ns, resultLabel(err))
		u.metrics.RecordError(ns)
		return nil, err
	}

	u.metrics.RecordLookup(ns, "ok")
	u.metrics.RecordBalance(ns, float64(j.Balance))

	if err := u.cache.Set(ctx, ns, sendID, j); err != nil {
		u.log.Warn("jar cache write failed", logger.String("send_id", sendID), logger.Error(err))
	}
	if u.recorder != nil {
		if err := u.recorder.Record(ctx, j); err != nil {
			u.log.Error("jar snapshot failed",
				logger.String("send_id", sendID),
				logger.String("backend", u.recorder.Backend()),
				logger.Error(err),
			)
		}
	}
	return j, nil
}

// shouldFallback never masks a definitive not-found answer.
func (u *JarLookup) shouldFallback(source string, err error) bool {
	if !u.fallback || source != SourceAPI || errors.Is(err, models.ErrJarNotFound) {
		return false
	}
	if errors.Is(err, models.ErrNotConfigured) {
		return true
	}
	_, upstream := models.IsUpstream(err)
	return upstream
}

func (u *JarLookup) fallbackScrape(ctx context.Context, sendID string, cause error) (*models.Jar, error) {
	u.log.Warn("jar api unavailable, falling back to scrape",
		logger.String("send_id", sendID),
		logger.Error(cause),
	)
	return u.cached(ctx, u.sources[SourceScrape], sendID)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, models.ErrJarNotFound):
		return "not_found"
	case errors.Is(err, models.ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}
