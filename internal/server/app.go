// Package server wires the tgauth server: storage, bot secret, metrics,
// the authentication service and the gRPC endpoint. It handles graceful
// shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tgauth/internal/dbx"
	"github.com/dmitrijs2005/tgauth/internal/filex"
	"github.com/dmitrijs2005/tgauth/internal/logging"
	"github.com/dmitrijs2005/tgauth/internal/server/config"
	"github.com/dmitrijs2005/tgauth/internal/server/linking"
	"github.com/dmitrijs2005/tgauth/internal/server/metrics"
	"github.com/dmitrijs2005/tgauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tgauth/internal/server/secrets"
	"github.com/dmitrijs2005/tgauth/internal/server/services"

	gs "github.com/dmitrijs2005/tgauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	metrics     *metrics.Prometheus
	authService *services.AuthService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.Debug)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if c.DatabaseDriver == repomanager.DriverSQLite {
		if path := filex.SQLitePath(c.DatabaseDSN); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, fmt.Errorf("db init error: %w", err)
			}
		}
	}

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	src, err := secrets.FromConfig(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bot secret: %w", err)
	}

	m := metrics.NewPrometheus()
	ls := linking.NewService(db, rm, logger)
	as := services.NewAuthService(c, src, ls, m, logger)

	return &App{config: c, logger: logger, db: db, metrics: m, authService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.metrics.Serve(ctx, app.config.MetricsAddr, app.logger); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
