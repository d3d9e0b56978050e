// Command setup runs one-off maintenance tasks against the configured
// database and object store:
//
//	setup migrate
//	setup ensure-bucket
//	setup sweep-sessions
//	setup create-user --email a@b.com --password secret123 [--name A]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"items-backend/internal/auth"
	"items-backend/internal/config"
	"items-backend/internal/database"
	"items-backend/internal/logging"
	"items-backend/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
)

const usage = `usage: setup <command> [flags]

commands:
  migrate          apply pending database migrations
  ensure-bucket    create the object storage bucket if missing
  sweep-sessions   delete expired sessions once
  create-user      create a user (--email, --password, --name)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	fs := config.Flags("setup " + command)
	email := fs.String("email", "", "email of the user to create")
	password := fs.String("password", "", "password of the user to create")
	name := fs.String("name", "", "display name of the user to create")
	if err := fs.Parse(os.Args[2:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, false)
	ctx := context.Background()

	switch command {
	case "migrate":
		err = withPool(ctx, cfg, func(pool *pgxpool.Pool) error {
			return database.Migrate(ctx, pool)
		})
	case "ensure-bucket":
		err = ensureBucket(ctx, cfg)
	case "sweep-sessions":
		err = withPool(ctx, cfg, func(pool *pgxpool.Pool) error {
			return sweepSessions(ctx, cfg, pool, logger)
		})
	case "create-user":
		err = withPool(ctx, cfg, func(pool *pgxpool.Pool) error {
			return createUser(ctx, pool, logger, *email, *password, *name)
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error(ctx, "command failed", "command", command, "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "done", "command", command)
}

func withPool(ctx context.Context, cfg *config.Config, fn func(*pgxpool.Pool) error) error {
	if cfg.DB.Source == "" {
		return errors.New("db.source is required")
	}
	pool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return fn(pool)
}

func ensureBucket(ctx context.Context, cfg *config.Config) error {
	objects, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	ensurer, ok := objects.(storage.BucketEnsurer)
	if !ok {
		return fmt.Errorf("storage driver %q has no bucket", cfg.Storage.Driver)
	}
	return ensurer.EnsureBucket(ctx)
}

func sweepSessions(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger logging.Logger) error {
	authority, err := auth.NewAuthority(database.NewStore(pool, nil), cfg.JWT.Secret, auth.WithLogger(logger))
	if err != nil {
		return err
	}
	removed, err := authority.Sweep(ctx)
	if err != nil {
		return err
	}
	logger.Info(ctx, "expired sessions removed", "count", removed)
	return nil
}

func createUser(ctx context.Context, pool *pgxpool.Pool, logger logging.Logger, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("--email must be a valid address")
	}
	if len(password) < 8 {
		return errors.New("--password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	params := database.CreateUserParams{Email: email, PasswordHash: hash}
	if name = strings.TrimSpace(name); name != "" {
		params.DisplayName = &name
	}

	user, err := database.NewStore(pool, nil).CreateUser(ctx, params)
	if err != nil {
		return err
	}
	logger.Info(ctx, "user created", "user_id", user.ID, "email", user.Email)
	return nil
}
