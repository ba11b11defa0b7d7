package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"AvkuWeb/pkg/config"
	xhttp "AvkuWeb/pkg/http"
	applogger "AvkuWeb/pkg/logger"
)

// App encapsulates the standalone server lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	log        *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, httpServer *xhttp.Server, log *applogger.Logger) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		httpServer: httpServer,
		log:        log,
	}
}

// Server returns the HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("snapshots", a.cfg.Snapshots.Backend),
		applogger.String("cache", a.cfg.Cache.Backend),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops accepting requests and drains in-flight ones.
// Cache and snapshot backends are closed by the DI cleanup afterwards.
func (a *App) shutdown() error {
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
