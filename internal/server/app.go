// Package server wires the AutoKeeper backend together: configuration,
// database, migrations, services, the HTTP API, the gRPC health endpoint
// and tracing. It also owns graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/dmitrijs2005/autokeeper/internal/server/auth"
	"github.com/dmitrijs2005/autokeeper/internal/server/config"
	"github.com/dmitrijs2005/autokeeper/internal/server/httpserver"
	"github.com/dmitrijs2005/autokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/autokeeper/internal/server/services"
	"github.com/dmitrijs2005/autokeeper/internal/server/telemetry"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/autokeeper/internal/server/grpc"
)

const serviceName = "autokeeper"

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	http     *httpserver.Server
	grpc     *gs.HealthServer
	shutdown telemetry.Shutdown
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	shutdown, err := telemetry.Setup(ctx, serviceName, c.OTelEndpoint)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	tokens := auth.NewTokenIssuer(c.AccessTokenSecret, c.RefreshTokenSecret,
		c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	ownership := services.NewVehicleOwnership(db, m)

	svc := httpserver.Services{
		Auth:        services.NewAuthService(db, m, tokens, c.BcryptCost, logger),
		Vehicles:    services.NewVehicleService(db, m, logger),
		FuelLogs:    services.NewFuelLogService(db, m, ownership, logger),
		ServiceLogs: services.NewServiceLogService(db, m, ownership, services.NewReceiptService(c), logger),
		Reminders:   services.NewReminderService(db, m, ownership, logger),
		DB:          db,
	}
	opts := httpserver.Options{CORSOrigins: c.CORSOrigins, AuthRateLimit: c.AuthRateLimit}

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		http:     httpserver.NewServer(c.EndpointAddrHTTP, svc, opts, logger),
		grpc:     gs.NewHealthServer(c.EndpointAddrGRPC, db, logger),
		shutdown: shutdown,
	}, nil
}

// Run serves HTTP and gRPC until SIGINT/SIGTERM/SIGQUIT or until either
// server fails, then releases the database and flushes traces.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(gctx) })
	g.Go(func() error { return app.grpc.Run(gctx) })

	err := g.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if terr := app.shutdown(flushCtx); terr != nil {
		app.logger.Warn(flushCtx, "telemetry shutdown", "error", terr)
	}
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(flushCtx, "db close", "error", cerr)
	}

	app.logger.Info(flushCtx, "App stopped")
	_ = logging.Sync(app.logger)
	return err
}
