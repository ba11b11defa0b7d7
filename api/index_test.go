package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	t.Setenv("MONO_TOKEN", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("SITE_DIR", t.TempDir()+"/missing")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("SNAPSHOT_BACKEND", "none")
	t.Setenv("LOG_LEVEL", "error")

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodOptions, "/api/monobank-jar", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodGet, "/api/monobank-jar?sendId=abc", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Server is not configured (MONO_TOKEN)", body["error"])
	})

	t.Run("function root resolves jar", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodGet, "/api?sendId=abc", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Server is not configured (MONO_TOKEN)")
	})

	t.Run("root without site is diagnostic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "API is running")
	})

	t.Run("contact without bot", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/send-telegram", strings.NewReader(`{"name":"A","email":"a@b.c","message":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		Handler(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Помилка при відправці в Telegram."}`, rec.Body.String())
	})

	t.Run("other methods", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodPut, "/anything", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
