package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/regsvc/user-api/internal/config"
	"github.com/regsvc/user-api/internal/email"
	"github.com/regsvc/user-api/internal/platform/postgres"
	"github.com/regsvc/user-api/internal/service"
	"github.com/regsvc/user-api/internal/service/auth"
	"github.com/regsvc/user-api/internal/store"
	"github.com/regsvc/user-api/internal/task"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	profileStore store.ProfileStore

	jwtService     auth.JWTService
	accountService *service.AccountService

	taskRunner *task.Runner

	server *http.Server
}

// newApplication wires all application dependencies from the loaded
// configuration. Configuration problems (short JWT secret, unreachable
// database) are fatal here, before the server starts accepting requests.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:               cfg.Auth.JWTSecret,
		AccessTokenLifetime:  time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute,
		RefreshTokenLifetime: time.Duration(cfg.Auth.RefreshTokenLifetimeMinutes) * time.Minute,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	profileStore := postgres.NewPostgresProfileStore(db, logger)

	taskRunner := task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)

	sender := email.NewSender(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
		cfg.Email.FromAddress,
	)
	notifier := task.NewNotifier(taskRunner, sender, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	policy := auth.NewEntropyPolicy(cfg.Auth.PasswordMinEntropyBits)

	accountService := service.NewAccountService(
		store.NewTxRunner(db),
		userStore,
		profileStore,
		jwtService,
		hasher,
		hasher,
		policy,
		notifier,
		logger,
	)

	app := &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userStore:      userStore,
		profileStore:   profileStore,
		jwtService:     jwtService,
		accountService: accountService,
		taskRunner:     taskRunner,
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return app, nil
}

// start launches the background workers and the HTTP server.
// It blocks until the server stops.
func (app *application) start() error {
	app.taskRunner.Start()

	app.logger.Info("server listening", slog.String("addr", app.server.Addr))
	if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// shutdown stops the HTTP server, drains in-flight background tasks and
// closes the database pool.
func (app *application) shutdown(ctx context.Context) {
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}

	app.taskRunner.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("database close failed", slog.String("error", err.Error()))
	}
}
