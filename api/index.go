// Package handler is the serverless entry point. The platform calls Handler
// for every request; the handler graph is built once per instance.
package handler

import (
	"net/http"
	"sync"

	"AvkuWeb/internal/di"
	"AvkuWeb/pkg/config"
)

var (
	once    sync.Once
	core    http.Handler
	initErr error
)

func load() {
	cfg, err := config.FromEnv()
	if err != nil {
		initErr = err
		return
	}
	// Instances are frozen between invocations, so resources live as long as the process.
	core, _, initErr = di.InitializeHandler(cfg)
}

// Handler serves one request through the shared router.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(load)
	if initErr != nil {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Server error"}`))
		return
	}
	core.ServeHTTP(w, r)
}
