package monobank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"AvkuWeb/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientInfoBody = `{
  "clientId": "x",
  "name": "Avku",
  "jars": [
    {"id": "j1", "sendId": "other", "title": "Other", "currencyCode": 980, "balance": 100, "goal": 1000},
    {"id": "j2", "sendId": "abc123", "title": "Drones", "currencyCode": 980, "balance": 1250050, "goal": 5000000}
  ]
}`

func newUpstream(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/personal/client-info", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Token"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchJarFound(t *testing.T) {
	var calls int32
	srv := newUpstream(t, http.StatusOK, clientInfoBody, &calls)

	c := New("secret", WithBaseURL(srv.URL))
	j, err := c.FetchJar(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", j.SendID)
	assert.Equal(t, "Drones", j.Title)
	assert.Equal(t, 980, j.CurrencyCode)
	assert.Equal(t, int64(1250050), j.Balance)
	require.NotNil(t, j.Goal)
	assert.Equal(t, int64(5000000), *j.Goal)
	assert.Equal(t, models.SourceAPI, j.Source)
	assert.EqualValues(t, 1, calls)
}

func TestFetchJarMissingIsNotFound(t *testing.T) {
	var calls int32
	srv := newUpstream(t, http.StatusOK, clientInfoBody, &calls)

	j, err := New("secret", WithBaseURL(srv.URL)).FetchJar(context.Background(), "nope")
	assert.Nil(t, j)
	assert.ErrorIs(t, err, models.ErrJarNotFound)
}

func TestFetchJarEmptyList(t *testing.T) {
	var calls int32
	srv := newUpstream(t, http.StatusOK, `{"clientId":"x"}`, &calls)

	_, err := New("secret", WithBaseURL(srv.URL)).FetchJar(context.Background(), "abc123")
	assert.ErrorIs(t, err, models.ErrJarNotFound)
}

func TestFetchJarUpstreamStatus(t *testing.T) {
	var calls int32
	srv := newUpstream(t, http.StatusTooManyRequests, `{"errorDescription":"Too many requests"}`, &calls)

	_, err := New("secret", WithBaseURL(srv.URL)).FetchJar(context.Background(), "abc123")
	ue, ok := models.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, ue.Status)
	assert.Equal(t, "monobank", ue.Service)
}

func TestFetchJarWithoutTokenSkipsUpstream(t *testing.T) {
	var calls int32
	srv := newUpstream(t, http.StatusOK, clientInfoBody, &calls)

	_, err := New("", WithBaseURL(srv.URL)).FetchJar(context.Background(), "abc123")
	assert.ErrorIs(t, err, models.ErrNotConfigured)
	assert.EqualError(t, err, "server is not configured (MONO_TOKEN)")
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFetchJarTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := New("secret", WithBaseURL(base)).FetchJar(context.Background(), "abc123")
	ue, ok := models.IsUpstream(err)
	require.True(t, ok)
	assert.Zero(t, ue.Status)
	assert.False(t, errors.Is(err, models.ErrJarNotFound))
}
