// Command bridge serves the provider's app platform API as MCP tools over
// stdio. Logs go to stderr because stdout carries the protocol.
package main

import (
	"context"
	"os"

	"items-backend/internal/bridge"
	"items-backend/internal/config"
	"items-backend/internal/logging"
)

func main() {
	ctx := context.Background()

	fs := config.Flags("bridge")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		logging.New(os.Stderr, "error", false).Error(ctx, "cannot load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.IsProduction())

	provider, err := bridge.NewDOProvider(cfg.Bridge.Token)
	if err != nil {
		logger.Error(ctx, "cannot create provider client", "error", err)
		os.Exit(1)
	}

	srv := bridge.NewServer(provider, cfg.Bridge.Name, cfg.Bridge.Version, logger)
	logger.Info(ctx, "bridge listening on stdio", "name", cfg.Bridge.Name, "version", cfg.Bridge.Version)
	if err := srv.ServeStdio(); err != nil {
		logger.Error(ctx, "bridge stopped", "error", err)
		os.Exit(1)
	}
}
