// Package server wires storage, services and the HTTP API of the dev auth
// server and runs it until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/opmlogin/internal/common"
	"github.com/dmitrijs2005/opmlogin/internal/logging"
	"github.com/dmitrijs2005/opmlogin/internal/server/config"
	"github.com/dmitrijs2005/opmlogin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/opmlogin/internal/server/rest"
	"github.com/dmitrijs2005/opmlogin/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	api         *rest.Server
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN != "" {
		var err error
		db, err = sqlOpen("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
		logger.Info(ctx, "Using PostgreSQL storage")
	} else {
		rm = repomanager.NewInMemoryRepositoryManager()
		logger.Info(ctx, "Using in-memory storage")
	}

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generating secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(ctx, "No secret key configured, tokens will not survive a restart")
	}

	us := services.NewUserService(db, rm, c)

	if seeds := c.ParsedSeedUsers(); len(seeds) > 0 {
		n, err := us.Seed(ctx, seeds)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("seeding users: %w", err)
		}
		logger.Info(ctx, "Seeded users", "created", n, "requested", len(seeds))
	}

	var pinger rest.Pinger
	if db != nil {
		pinger = db
	}
	api := rest.NewServer(c.EndpointAddr, logger, us, pinger, c.SecretKey)

	return &App{config: c, logger: logger, db: db, userService: us, api: api}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	err := app.api.Run(ctx)

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(ctx, "db close error", "error", cerr)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
