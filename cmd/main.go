package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/curator/internal/curator"
	"github.com/desertthunder/curator/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	ctx := context.Background()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var client *curator.Client
	if config.Credentials.Gemini.APIKey != "" {
		if c, err := curator.NewClient(ctx, config.Credentials.Gemini, logger); err == nil {
			client = c
		} else {
			logger.Warn("curation client unavailable", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: client,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "curator",
		Usage:    "Curate scored playlists with an LLM editor and export them to Spotify & YouTube",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
