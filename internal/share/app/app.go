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

	"github.com/aussiebroadwan/deptshare/internal/share/blob"
	httpapi "github.com/aussiebroadwan/deptshare/internal/share/http"
	"github.com/aussiebroadwan/deptshare/internal/share/service"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/postgres"
	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/sqlite"
	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the file sharing service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	blobs      *blob.LocalStore
	keyManager *jwtx.KeyManager

	// Services
	accountService      *service.AccountService
	sessionService      *service.SessionService
	fileService         *service.FileService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "deptshare",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initBlobs(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	keyManager, err := InitSessionKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = keyManager

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("deptshare starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database_driver", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.housekeepingService.Stop()
			_ = app.db.Close()
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down deptshare...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("deptshare stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initBlobs prepares the upload directory
func (app *Application) initBlobs() error {
	blobs, err := blob.NewLocalStore(app.cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload directory: %w", err)
	}
	app.blobs = blobs

	app.logger.Info("upload directory ready", "path", blobs.Dir())
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	credentials := service.NewCredentialVerifier(app.db, cryptox.NewPasswordHasher(app.cfg.BcryptCost))

	app.accountService = &service.AccountService{
		Store:       app.db,
		Credentials: credentials,
		Allocator:   &service.IdentityAllocator{MaxAttempts: app.cfg.IdentifierMaxAttempts},
	}
	app.sessionService = &service.SessionService{
		Store:       app.db,
		Credentials: credentials,
		KeyManager:  app.keyManager,
		Issuer:      app.cfg.Issuer,
		TTL:         app.cfg.SessionTTL,
	}
	app.fileService = &service.FileService{
		Store:       app.db,
		Blobs:       app.blobs,
		MaxFileSize: app.cfg.MaxFileSize,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.blobs,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.blobs,
		app.logger,
	)

	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.FileService = app.fileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
