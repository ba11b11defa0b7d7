package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "https://api.monobank.ua", cfg.Monobank.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Scraper.WaitTimeout)
	assert.Equal(t, 30*time.Second, cfg.Scraper.NavTimeout)
	assert.Equal(t, []string{"uk", "en"}, cfg.Site.Languages)
	assert.Equal(t, "none", cfg.Snapshots.Backend)
	assert.Equal(t, -1, cfg.Snapshots.Kafka.RequiredAcks)
}

func TestLoadWithEnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, "environment: test\nserver:\n  port: 8080\n")
	t.Setenv("PORT", "9090")
	t.Setenv("MONO_TOKEN", "mono-secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-secret")
	t.Setenv("TELEGRAM_CHAT_ID", "-100500")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mono-secret", cfg.Monobank.Token)
	assert.Equal(t, "bot-secret", cfg.Telegram.BotToken)
	assert.Equal(t, "-100500", cfg.Telegram.ChatID)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Snapshots.Kafka.Brokers)
}

func TestFromEnvWithoutFile(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Empty(t, cfg.Monobank.Token)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errSub string
	}{
		{name: "bad cache backend", body: "environment: t\ncache:\n  backend: disk\n", errSub: "cache.backend"},
		{name: "kafka without brokers", body: "environment: t\nsnapshots:\n  backend: kafka\n", errSub: "brokers"},
		{name: "unknown snapshot backend", body: "environment: t\nsnapshots:\n  backend: s3\n", errSub: "snapshots.backend"},
		{name: "template without placeholder", body: "environment: t\nscraper:\n  url_template: https://x\n", errSub: "url_template"},
		{name: "port out of range", body: "environment: t\nserver:\n  port: 70000\n", errSub: "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}
