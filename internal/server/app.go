// Package server initializes and runs the todoauth server: it opens the
// database, applies migrations, wires the auth services and serves them over
// HTTP until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/logging"
	"github.com/dmitrijs2005/todoauth/internal/server/auth"
	"github.com/dmitrijs2005/todoauth/internal/server/config"
	"github.com/dmitrijs2005/todoauth/internal/server/metrics"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoauth/internal/server/rest"
	"github.com/dmitrijs2005/todoauth/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const defaultSecretKey = "secretKey"

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	authService  *services.AuthService
	demoResetter *services.DemoResetter
	recorder     *metrics.Recorder
	registry     *prometheus.Registry
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	if c.SecretKey == "" {
		return nil, common.ErrEmptySecret
	}
	if c.AccessTokenValidityDuration <= 0 {
		return nil, common.ErrInvalidTokenValidity
	}
	if c.SecretKey == defaultSecretKey && c.Environment == common.ProductionEnvironment {
		logger.Warn(ctx, "Using the default secret key in production")
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}
	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		authService:  services.NewAuthService(db, rm, hasher, tokens, c),
		demoResetter: services.NewDemoResetter(db, rm),
		recorder:     metrics.NewRecorder(registry),
		registry:     registry,
	}, nil
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

// resetDemoTasks restores demo sample data outside production. Failures are
// logged and do not stop start-up.
func (app *App) resetDemoTasks(ctx context.Context) {
	if !app.config.ResetsDemoTasks() {
		return
	}

	n, err := app.demoResetter.Reset(ctx)
	if err != nil {
		app.logger.Error(ctx, "Demo task reset failed", logging.ErrorAttrs(err)...)
		return
	}
	app.logger.Info(ctx, "Demo tasks reset", "users", n)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.recorder, app.registry)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	app.resetDemoTasks(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "Error closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
