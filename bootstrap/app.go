package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"site-search/cache"
	"site-search/config"
	"site-search/gateway"
	"site-search/logger"
	"site-search/usecase"
	appOtel "site-search/utils/otel"
)

// App holds all components of the site-search service.
type App struct {
	httpServer   *http.Server
	driverClose  func()
	otelShutdown appOtel.ShutdownFunc
}

// Run initializes all components and starts the service.
// It blocks until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting site-search",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Load config ──
	appCfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	// ── Drivers (infrastructure layer) ──
	dbDriver, err := initDatabaseDriver(ctx)
	if err != nil {
		logger.Logger.Error("Failed to initialize database driver", "err", err)
		return err
	}

	// ── Gateways (anti-corruption layer) ──
	contentStore := gateway.NewContentStoreGateway(dbDriver)

	// ── Use cases (application layer) ──
	resultCache := cache.NewResultCache(appCfg.Search.CacheTTL, appCfg.Search.CacheMaxEntries)
	searchUsecase := usecase.NewSearchContentUsecase(contentStore, resultCache, logger.Logger)

	// ── Server ──
	app := &App{
		httpServer:   newHTTPServer(searchUsecase, appCfg, otelCfg),
		driverClose:  dbDriver.Close,
		otelShutdown: otelShutdown,
	}

	go func() {
		logger.Logger.Info("http listen", "addr", app.httpServer.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http", "err", err)
		}
	}()

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	if a.driverClose != nil {
		a.driverClose()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}
