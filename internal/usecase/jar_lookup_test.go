package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"AvkuWeb/internal/domain/models"
	drepo "AvkuWeb/internal/domain/repository"
	svccache "AvkuWeb/internal/service/cache"
	pkgcache "AvkuWeb/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLookup(api, scrape *fakeSource, rec *SnapshotRecorder, fallback bool) *JarLookup {
	jc := svccache.NewJarCache(pkgcache.NewMemoryCache(), 0, nil)
	var a, s drepo.JarSource
	if api != nil {
		a = api
	}
	if scrape != nil {
		s = scrape
	}
	return NewJarLookup(a, s, jc, rec, newMetrics(), nil, fallback)
}

func apiSource() *fakeSource {
	return &fakeSource{name: "api", jar: &models.Jar{Title: "Drones", Balance: 1000, Source: models.SourceAPI}}
}

func scrapeSource() *fakeSource {
	return &fakeSource{name: "scrape", jar: &models.Jar{Balance: 10, Source: models.SourceScrape}}
}

func TestResolveServesCacheWithoutUpstreamCall(t *testing.T) {
	api := apiSource()
	u := newLookup(api, nil, nil, false)
	ctx := context.Background()

	first, err := u.Resolve(ctx, SourceAPI, "abc")
	require.NoError(t, err)
	second, err := u.Resolve(ctx, SourceAPI, "abc")
	require.NoError(t, err)

	assert.Equal(t, 1, api.Calls())
	assert.Equal(t, first, second)

	_, err = u.Resolve(ctx, SourceAPI, "other")
	require.NoError(t, err)
	assert.Equal(t, 2, api.Calls())
}

func TestResolveNotFoundIsNotCachedNorZero(t *testing.T) {
	api := apiSource()
	api.err = models.ErrJarNotFound
	u := newLookup(api, nil, nil, false)

	j, err := u.Resolve(context.Background(), SourceAPI, "abc")
	assert.Nil(t, j)
	assert.ErrorIs(t, err, models.ErrJarNotFound)

	_, _ = u.Resolve(context.Background(), SourceAPI, "abc")
	assert.Equal(t, 2, api.Calls())
}

func TestResolveValidatesInput(t *testing.T) {
	u := newLookup(apiSource(), nil, nil, false)

	_, err := u.Resolve(context.Background(), SourceAPI, "")
	assert.ErrorIs(t, err, models.ErrMissingSendID)

	_, err = u.Resolve(context.Background(), SourceScrape, "abc")
	assert.ErrorIs(t, err, models.ErrUnknownSource)
}

func TestResolveNotConfiguredCheckedBeforeCache(t *testing.T) {
	api := apiSource()
	u := newLookup(api, nil, nil, false)
	_, err := u.Resolve(context.Background(), SourceAPI, "abc")
	require.NoError(t, err)

	api.ready = &models.ConfigError{Setting: "MONO_TOKEN"}
	_, err = u.Resolve(context.Background(), SourceAPI, "abc")
	assert.ErrorIs(t, err, models.ErrNotConfigured)
}

func TestResolveFallsBackToScrape(t *testing.T) {
	tests := []struct {
		name  string
		ready error
		err   error
	}{
		{name: "missing token", ready: &models.ConfigError{Setting: "MONO_TOKEN"}},
		{name: "upstream status", err: &models.UpstreamError{Service: "monobank", Status: http.StatusTooManyRequests}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, scrape := apiSource(), scrapeSource()
			api.ready, api.err = tt.ready, tt.err
			u := newLookup(api, scrape, nil, true)

			j, err := u.Resolve(context.Background(), SourceAPI, "abc")
			require.NoError(t, err)
			assert.Equal(t, models.SourceScrape, j.Source)
			assert.Equal(t, 1, scrape.Calls())
		})
	}
}

func TestResolveFallbackNeverMasksNotFound(t *testing.T) {
	api, scrape := apiSource(), scrapeSource()
	api.err = models.ErrJarNotFound
	u := newLookup(api, scrape, nil, true)

	_, err := u.Resolve(context.Background(), SourceAPI, "abc")
	assert.ErrorIs(t, err, models.ErrJarNotFound)
	assert.Zero(t, scrape.Calls())
}

func TestResolveWithoutFallbackReturnsUpstreamError(t *testing.T) {
	api, scrape := apiSource(), scrapeSource()
	api.err = &models.UpstreamError{Service: "monobank", Status: http.StatusInternalServerError}
	u := newLookup(api, scrape, nil, false)

	_, err := u.Resolve(context.Background(), SourceAPI, "abc")
	_, ok := models.IsUpstream(err)
	assert.True(t, ok)
	assert.Zero(t, scrape.Calls())
}

func TestResolveConcurrentMissesShareOneFetch(t *testing.T) {
	scrape := scrapeSource()
	scrape.release = make(chan struct{})
	u := newLookup(nil, scrape, nil, false)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*models.Jar, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = u.Resolve(context.Background(), SourceScrape, "abc")
		}(i)
	}
	require.Eventually(t, func() bool { return scrape.Calls() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(scrape.release)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, int64(10), results[i].Balance)
	}
	assert.Equal(t, 1, scrape.Calls())
}

func TestResolveRecordsSnapshotOnlyForFreshLookups(t *testing.T) {
	pub := &fakePublisher{}
	rec := NewSnapshotRecorder(pub, nil, newMetrics(), BackendKafka)
	u := newLookup(apiSource(), nil, rec, false)

	_, err := u.Resolve(context.Background(), SourceAPI, "abc")
	require.NoError(t, err)
	_, err = u.Resolve(context.Background(), SourceAPI, "abc")
	require.NoError(t, err)

	assert.Equal(t, 1, pub.Len())
}

func TestResolveSnapshotFailureDoesNotFailLookup(t *testing.T) {
	pub := &fakePublisher{err: assert.AnError}
	rec := NewSnapshotRecorder(pub, nil, newMetrics(), BackendKafka)
	u := newLookup(apiSource(), nil, rec, false)

	j, err := u.Resolve(context.Background(), SourceAPI, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), j.Balance)
}
