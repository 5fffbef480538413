package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpapi "github.com/openummah/masjidhub/internal/directory/http"
	"github.com/openummah/masjidhub/internal/directory/service"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/internal/directory/store/drivers/memory"
	mongostore "github.com/openummah/masjidhub/internal/directory/store/drivers/mongo"
	"github.com/openummah/masjidhub/pkg/httpx"
	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the directory service together: config, logger, store,
// services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer

	authService       *service.AuthService
	mosqueService     *service.MosqueService
	salahTimesService *service.SalahTimesService
	eventService      *service.EventService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. The store
// connects lazily; a down database does not stop the service from booting.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "masjidhub",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		signer: &jwtx.Signer{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.Issuer,
			TTL:    jwtx.DefaultTokenTTL,
		},
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case "memory":
		app.logger.Warn("using in-memory store, data will not survive a restart")
		app.db = memory.NewStore()
		return nil
	case "mongo":
		db, err := mongostore.NewStore(app.cfg.MongoURI, app.cfg.MongoDB)
		if err != nil {
			return fmt.Errorf("init mongo store: %w", err)
		}
		app.db = db

		// indexes are best-effort at boot; a down store gets them on the
		// next restart
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.EnsureIndexes(ctx); err != nil {
			app.logger.Warn("ensure indexes failed", "err", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db, Signer: app.signer}
	app.mosqueService = &service.MosqueService{Store: app.db}
	app.salahTimesService = &service.SalahTimesService{Store: app.db}
	app.eventService = &service.EventService{Store: app.db}
}

func (app *Application) initHTTP() {
	metrics := httpx.NewMetrics("masjidhub", prometheus.DefaultRegisterer)

	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.SecureCookies(),
		metrics,
	)
	router.AuthService = app.authService
	router.MosqueService = app.mosqueService
	router.SalahTimesService = app.salahTimesService
	router.EventService = app.eventService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("directory service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests with a deadline and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down directory service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(ctx); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("directory service stopped")
	return nil
}
