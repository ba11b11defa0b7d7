package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"production"`
	Server      struct {
		Port            int           `yaml:"port" default:"3000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		Path          string        `yaml:"path" default:"/metrics"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"5s"`
	} `yaml:"metrics"`
	Cache struct {
		Backend string        `yaml:"backend" default:"memory"`
		TTL     time.Duration `yaml:"ttl" default:"60s"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"avku"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Jar struct {
		FallbackScrape bool `yaml:"fallback_scrape"`
	} `yaml:"jar"`
	Monobank struct {
		Token   string        `yaml:"token"`
		BaseURL string        `yaml:"base_url" default:"https://api.monobank.ua"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"monobank"`
	Scraper struct {
		Enabled        bool          `yaml:"enabled" default:"true"`
		URLTemplate    string        `yaml:"url_template" default:"https://send.monobank.ua/jar/%s"`
		ExecPath       string        `yaml:"exec_path"`
		NavTimeout     time.Duration `yaml:"nav_timeout" default:"30s"`
		WaitTimeout    time.Duration `yaml:"wait_timeout" default:"15s"`
		ViewportWidth  int           `yaml:"viewport_width" default:"1200"`
		ViewportHeight int           `yaml:"viewport_height" default:"900"`
	} `yaml:"scraper"`
	Telegram struct {
		BotToken string        `yaml:"bot_token"`
		ChatID   string        `yaml:"chat_id"`
		BaseURL  string        `yaml:"base_url" default:"https://api.telegram.org"`
		Timeout  time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"telegram"`
	Site struct {
		Dir               string   `yaml:"dir" default:"web/public"`
		Page              string   `yaml:"page" default:"index.html"`
		DefaultLang       string   `yaml:"default_lang" default:"uk"`
		Languages         []string `yaml:"languages" default:"[\"uk\",\"en\"]"`
		DictionaryBaseURL string   `yaml:"dictionary_base_url"`
	} `yaml:"site"`
	Stream struct {
		Interval time.Duration `yaml:"interval" default:"30s"`
	} `yaml:"stream"`
	Snapshots struct {
		Backend string `yaml:"backend" default:"none"`
		Kafka   struct {
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic" default:"avku.jar-snapshots"`
			RequiredAcks int           `yaml:"required_acks" default:"-1"`
			Compression  string        `yaml:"compression" default:"gzip"`
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"kafka"`
		ClickHouse struct {
			Host         string        `yaml:"host" default:"localhost"`
			Port         int           `yaml:"port" default:"9000"`
			Database     string        `yaml:"database" default:"avku"`
			User         string        `yaml:"user" default:"default"`
			Password     string        `yaml:"password"`
			UseHTTP      bool          `yaml:"use_http"`
			DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"clickhouse"`
	} `yaml:"snapshots"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// FromEnv builds a configuration from defaults and environment variables only.
func FromEnv() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MONO_TOKEN"); v != "" {
		c.Monobank.Token = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("CHROME_EXECUTABLE_PATH"); v != "" {
		c.Scraper.ExecPath = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("SNAPSHOT_BACKEND"); v != "" {
		c.Snapshots.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Snapshots.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Snapshots.Kafka.Topic = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.Snapshots.ClickHouse.Host = v
	}
	if v := os.Getenv("SITE_DIR"); v != "" {
		c.Site.Dir = v
	}
	if v := os.Getenv("DICTIONARY_BASE_URL"); v != "" {
		c.Site.DictionaryBaseURL = v
	}
}

// Validate checks if the configuration is valid.
// Secrets are not required here: a missing token is reported per request.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	switch c.Snapshots.Backend {
	case "none", "clickhouse":
	case "kafka":
		if len(c.Snapshots.Kafka.Brokers) == 0 {
			return fmt.Errorf("snapshots.kafka.brokers cannot be empty when backend is kafka")
		}
	default:
		return fmt.Errorf("snapshots.backend must be 'none', 'kafka' or 'clickhouse', got '%s'", c.Snapshots.Backend)
	}
	if c.Scraper.Enabled && !strings.Contains(c.Scraper.URLTemplate, "%s") {
		return fmt.Errorf("scraper.url_template must contain %%s")
	}
	if c.Site.DefaultLang == "" {
		return fmt.Errorf("site.default_lang is required")
	}
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("stream.interval must be positive")
	}
	return nil
}
