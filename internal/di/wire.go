//go:build wireinject
// +build wireinject

package di

import (
	"net/http"

	"AvkuWeb/pkg/config"
	"AvkuWeb/pkg/server"

	"github.com/google/wire"
)

var coreSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,

	// Infrastructure
	ProvideCacheService,
	ProvideJarCache,
	ProvideSnapshotPublisher,
	ProvideSnapshotStorage,
	ProvideSiteFS,

	// Use cases
	ProvideSnapshotRecorder,
	ProvideJarLookup,
	ProvideContactForwarder,
	ProvidePersonalizer,

	// Handlers
	ProvideJarEchoHandler,
	ProvideContactEchoHandler,
	ProvideStreamHandler,
	ProvideSiteEchoHandler,
	ProvideDispatchHandler,
	ProvideHandlers,
	ProvideHTTPServer,
)

// InitializeApp wires up all dependencies and returns the standalone application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(coreSet, ProvideApp)
	return &server.App{}, nil, nil
}

// InitializeHandler wires the same graph and returns only the request handler.
func InitializeHandler(cfg *config.Config) (http.Handler, func(), error) {
	wire.Build(coreSet, ProvideHTTPHandler)
	return nil, nil, nil
}
