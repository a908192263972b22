package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockLens/internal/domain/models"
	"StockLens/internal/usecase"
	"StockLens/pkg/cache"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	pkgkafka "StockLens/pkg/kafka"
	applogger "StockLens/pkg/logger"
)

// cliSession is the session one-shot loads run under.
const cliSession = "cli"

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	orch       *usecase.Orchestrator
	sessions   *usecase.Sessions
	httpServer *xhttp.Server
	cache      cache.Service
	producer   *pkgkafka.Producer
}

// New creates a new App instance with all dependencies. producer may be nil.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	orch *usecase.Orchestrator,
	sessions *usecase.Sessions,
	httpServer *xhttp.Server,
	c cache.Service,
	producer *pkgkafka.Producer,
) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		orch:       orch,
		sessions:   sessions,
		httpServer: httpServer,
		cache:      c,
		producer:   producer,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("stocklens started",
		applogger.String("backend", a.cfg.Backend.BaseURL),
		applogger.String("cache", a.cfg.Cache.Backend),
		applogger.Bool("kafka", a.producer != nil),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// LoadOnce loads symbol without serving HTTP and returns the committed view.
func (a *App) LoadOnce(ctx context.Context, symbol string) (*models.ViewModel, error) {
	vm, err := a.orch.LoadSymbol(ctx, a.sessions.Get(cliSession), symbol)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", symbol, err)
	}
	return vm, nil
}

// Close releases infrastructure clients without touching the HTTP server.
func (a *App) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.Close()

	a.logger.Info("shutdown complete")
	return nil
}
