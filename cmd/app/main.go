package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"AvkuWeb/internal/di"
	"AvkuWeb/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config; without a file everything comes from the environment
	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(*configPath); errors.Is(statErr, os.ErrNotExist) {
		cfg, err = config.FromEnv()
	} else {
		cfg, err = config.LoadWithEnv(*configPath)
	}
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s port=%d snapshots=%s", cfg.Environment, cfg.Server.Port, cfg.Snapshots.Backend)

	// Wire DI: Initialize all dependencies
	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	err = app.Run()
	cleanup()
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
