// @title           Items API
// @version         1.0
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"items-backend/docs"
	"items-backend/internal/api"
	"items-backend/internal/auth"
	"items-backend/internal/config"
	"items-backend/internal/database"
	"items-backend/internal/logging"
	"items-backend/internal/storage"
	"items-backend/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	fs := config.Flags("server")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		logging.New(os.Stderr, "error", false).Error(context.Background(), "cannot load configuration", "error", err)
		return err
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		return err
	}

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		logger.Error(ctx, "cannot connect to database", "error", err)
		return err
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		logger.Error(ctx, "cannot ping database", "error", err)
		return err
	}
	logger.Info(ctx, "connected to database")

	if err := database.Migrate(ctx, dbpool); err != nil {
		logger.Error(ctx, "migrations failed", "error", err)
		return err
	}

	objects, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Error(ctx, "cannot initialise object storage", "driver", cfg.Storage.Driver, "error", err)
		return err
	}
	if ensurer, ok := objects.(storage.BucketEnsurer); ok {
		if err := ensurer.EnsureBucket(ctx); err != nil {
			logger.Error(ctx, "cannot ensure bucket", "bucket", cfg.Storage.Bucket, "error", err)
			return err
		}
	}
	logger.Info(ctx, "object storage ready", "driver", cfg.Storage.Driver)

	wsHub := websocket.NewHub(logger.With("component", "websocket"))
	go wsHub.Run(ctx)

	store := database.NewStore(dbpool, wsHub)

	authority, err := auth.NewAuthority(store, cfg.JWT.Secret,
		auth.WithTTL(cfg.JWT.TTL),
		auth.WithLogger(logger.With("component", "auth")),
	)
	if err != nil {
		logger.Error(ctx, "cannot create session authority", "error", err)
		return err
	}
	go authority.RunSweeper(ctx, cfg.Sessions.SweepInterval)

	docs.SwaggerInfo.Host = cfg.AppHost
	server := api.NewServer(cfg, store, objects, wsHub, authority, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "starting server", "addr", cfg.Addr, "env", cfg.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error(ctx, "server stopped", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "graceful shutdown failed", "error", err)
		return err
	}
	return nil
}
