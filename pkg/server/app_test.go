package server

import (
	"context"
	"testing"
	"time"

	"AvkuWeb/pkg/config"
	xhttp "AvkuWeb/pkg/http"

	"github.com/stretchr/testify/require"
)

func TestRunContextStopsOnCancel(t *testing.T) {
	cfg := &config.Config{Environment: "test"}
	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0))
	app := New(cfg, srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
