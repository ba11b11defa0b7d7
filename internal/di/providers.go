package di

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"AvkuWeb/internal/domain/repository"
	"AvkuWeb/internal/handler/api"
	internalrepo "AvkuWeb/internal/repository"
	svccache "AvkuWeb/internal/service/cache"
	"AvkuWeb/internal/service/i18n"
	"AvkuWeb/internal/service/monobank"
	"AvkuWeb/internal/service/scraper"
	"AvkuWeb/internal/service/telegram"
	"AvkuWeb/internal/usecase"
	pkgcache "AvkuWeb/pkg/cache"
	pkgch "AvkuWeb/pkg/clickhouse"
	"AvkuWeb/pkg/config"
	xhttp "AvkuWeb/pkg/http"
	pkgkafka "AvkuWeb/pkg/kafka"
	"AvkuWeb/pkg/logger"
	"AvkuWeb/pkg/metrics"
	"AvkuWeb/pkg/server"
)

var (
	metricsOnce     sync.Once
	metricsRecorder *metrics.Recorder
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics returns the process-wide Prometheus recorder.
// Collectors live in the default registry, so the recorder is created once.
func ProvideMetrics() repository.Metrics {
	metricsOnce.Do(func() {
		metricsRecorder = metrics.New(nil)
	})
	return metricsRecorder
}

// ProvideCacheService creates the byte cache selected by cache.backend.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, func(), error) {
	var svc pkgcache.Service
	switch cfg.Cache.Backend {
	case "memory":
		svc = pkgcache.NewMemoryCache()
	case "redis", "layered":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		svc = rc
		if cfg.Cache.Backend == "layered" {
			svc = pkgcache.NewLayeredCache(rc)
		}
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	cleanup := func() {
		_ = svc.Close()
	}
	return svc, cleanup, nil
}

// ProvideJarCache wraps the byte cache with jar encoding and the configured TTL.
func ProvideJarCache(store pkgcache.Service, cfg *config.Config, log *logger.Logger) repository.JarCache {
	return svccache.NewJarCache(store, cfg.Cache.TTL, log)
}

// ProvideSnapshotPublisher creates the Kafka publisher when snapshots go to Kafka.
func ProvideSnapshotPublisher(cfg *config.Config) (repository.SnapshotPublisher, error) {
	if cfg.Snapshots.Backend != usecase.BackendKafka {
		return nil, nil
	}

	k := cfg.Snapshots.Kafka
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(k.Brokers),
		pkgkafka.WithTopic(k.Topic),
		pkgkafka.WithCompression(k.Compression),
		pkgkafka.WithRequiredAcks(k.RequiredAcks),
		pkgkafka.WithMaxAttempts(k.MaxAttempts),
		pkgkafka.WithWriteTimeout(k.WriteTimeout),
		pkgkafka.WithAsync(k.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer), nil
}

// ProvideSnapshotStorage connects to ClickHouse and prepares the schema when
// snapshots are stored there.
func ProvideSnapshotStorage(cfg *config.Config) (repository.SnapshotStorage, error) {
	if cfg.Snapshots.Backend != usecase.BackendClickHouse {
		return nil, nil
	}

	c := cfg.Snapshots.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(c.Host),
		pkgch.WithPort(c.Port),
		pkgch.WithDatabase(c.Database),
		pkgch.WithCredentials(c.User, c.Password),
		pkgch.WithHTTP(c.UseHTTP),
		pkgch.WithTimeouts(c.DialTimeout, c.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	store := internalrepo.NewClickHouseStorage(client.DB(), client.Database())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideSnapshotRecorder routes snapshots to the configured backend.
func ProvideSnapshotRecorder(
	pub repository.SnapshotPublisher,
	store repository.SnapshotStorage,
	m repository.Metrics,
	cfg *config.Config,
) (*usecase.SnapshotRecorder, func()) {
	rec := usecase.NewSnapshotRecorder(pub, store, m, cfg.Snapshots.Backend)
	return rec, rec.Close
}

// ProvideJarLookup wires the bank API source and, when enabled, the scrape source.
func ProvideJarLookup(
	cfg *config.Config,
	cache repository.JarCache,
	recorder *usecase.SnapshotRecorder,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.JarLookup {
	bank := monobank.New(cfg.Monobank.Token,
		monobank.WithBaseURL(cfg.Monobank.BaseURL),
		monobank.WithTimeout(cfg.Monobank.Timeout),
	)

	var scrape repository.JarSource
	if cfg.Scraper.Enabled {
		browser := scraper.NewBrowser(
			scraper.WithExecPath(cfg.Scraper.ExecPath),
			scraper.WithViewport(cfg.Scraper.ViewportWidth, cfg.Scraper.ViewportHeight),
			scraper.WithTimeouts(cfg.Scraper.NavTimeout, cfg.Scraper.WaitTimeout),
		)
		scrape = scraper.New(browser,
			scraper.WithURLTemplate(cfg.Scraper.URLTemplate),
			scraper.WithTimeout(cfg.Scraper.NavTimeout+cfg.Scraper.WaitTimeout+5*time.Second),
		)
	}

	return usecase.NewJarLookup(bank, scrape, cache, recorder, m, log, cfg.Jar.FallbackScrape)
}

// ProvideContactForwarder creates the contact form forwarder.
func ProvideContactForwarder(cfg *config.Config, m repository.Metrics, log *logger.Logger) *usecase.ContactForwarder {
	bot := telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
		telegram.WithBaseURL(cfg.Telegram.BaseURL),
		telegram.WithTimeout(cfg.Telegram.Timeout),
	)
	return usecase.NewContactForwarder(bot, m, log)
}

// ProvideSiteFS opens the static site directory. It returns nil when the
// directory does not exist, which turns page serving off.
func ProvideSiteFS(cfg *config.Config) fs.FS {
	if cfg.Site.Dir == "" {
		return nil
	}
	if st, err := os.Stat(cfg.Site.Dir); err != nil || !st.IsDir() {
		return nil
	}
	return os.DirFS(cfg.Site.Dir)
}

// ProvidePersonalizer creates the page renderer. Dictionaries come from the
// remote base URL when configured, otherwise from the site directory.
func ProvidePersonalizer(site fs.FS, cfg *config.Config, log *logger.Logger) *usecase.Personalizer {
	if site == nil {
		return nil
	}

	var loader repository.DictionaryLoader
	if cfg.Site.DictionaryBaseURL != "" {
		loader = i18n.NewHTTPLoader(cfg.Site.DictionaryBaseURL, xhttp.NewClient(xhttp.WithTimeout(5*time.Second)))
	} else {
		loader = i18n.NewFSLoader(site)
	}

	neg := i18n.NewNegotiator(cfg.Site.Languages, cfg.Site.DefaultLang)
	return usecase.NewPersonalizer(site, cfg.Site.Page, loader, neg, log)
}

// ProvideJarEchoHandler creates the jar API handler.
func ProvideJarEchoHandler(log *logger.Logger, lookup *usecase.JarLookup, recorder *usecase.SnapshotRecorder) *api.JarEchoHandler {
	return api.NewJarEchoHandler(log, lookup, recorder)
}

// ProvideContactEchoHandler creates the contact form handler.
func ProvideContactEchoHandler(log *logger.Logger, contact *usecase.ContactForwarder) *api.ContactEchoHandler {
	return api.NewContactEchoHandler(log, contact)
}

// ProvideStreamHandler creates the live jar stream handler.
func ProvideStreamHandler(log *logger.Logger, lookup *usecase.JarLookup, cfg *config.Config) *api.StreamHandler {
	return api.NewStreamHandler(log, lookup, cfg.Stream.Interval)
}

// ProvideSiteEchoHandler creates the page handler, or nil without a site.
func ProvideSiteEchoHandler(log *logger.Logger, p *usecase.Personalizer, site fs.FS) *api.SiteEchoHandler {
	if p == nil {
		return nil
	}
	return api.NewSiteEchoHandler(log, p, site)
}

// ProvideDispatchHandler creates the catch-all router.
func ProvideDispatchHandler(jar *api.JarEchoHandler, contact *api.ContactEchoHandler, site *api.SiteEchoHandler) *api.DispatchHandler {
	return api.NewDispatchHandler(jar, contact, site)
}

// ProvideHandlers collects the route handlers in registration order.
// The dispatcher goes last so explicit routes take precedence.
func ProvideHandlers(
	jar *api.JarEchoHandler,
	contact *api.ContactEchoHandler,
	stream *api.StreamHandler,
	site *api.SiteEchoHandler,
	dispatch *api.DispatchHandler,
) []xhttp.Handler {
	handlers := []xhttp.Handler{jar, contact, stream}
	if site != nil {
		handlers = append(handlers, site)
	}
	return append(handlers, dispatch)
}

// ProvideHTTPServer creates the echo server with the configured middleware.
func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, log *logger.Logger) *xhttp.Server {
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.Path, cfg.Metrics.SlowThreshold),
		xhttp.WithLogger(log),
	)
}

// ProvideHTTPHandler exposes the server as a plain http.Handler for serverless use.
func ProvideHTTPHandler(srv *xhttp.Server) http.Handler {
	return srv.Handler()
}

// ProvideApp creates the standalone application.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, log *logger.Logger) *server.App {
	return server.New(cfg, srv, log)
}
