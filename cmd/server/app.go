package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/expense-api/internal/config"
	"github.com/phrazzld/expense-api/internal/platform/postgres"
	"github.com/phrazzld/expense-api/internal/platform/sqlite"
	"github.com/phrazzld/expense-api/internal/service"
	"github.com/phrazzld/expense-api/internal/service/auth"
	"github.com/phrazzld/expense-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	expenseStore store.ExpenseStore

	// Service interfaces
	passwordHasher auth.PasswordHasher
	tokenService   auth.TokenService
	authService    service.AuthService
	expenseService service.ExpenseService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores for the configured backend
	switch cfg.Database.Driver {
	case driverSQLite:
		app.userStore = sqlite.NewUserStore(db, logger)
		app.expenseStore = sqlite.NewExpenseStore(db, logger)
	case driverPostgres:
		app.userStore = postgres.NewPostgresUserStore(db, logger)
		app.expenseStore = postgres.NewPostgresExpenseStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.authService, err = service.NewAuthService(
		app.userStore,
		app.passwordHasher,
		app.tokenService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.expenseService, err = service.NewExpenseService(app.expenseStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
