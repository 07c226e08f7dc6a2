// Package cli wires configuration, logging and storage into the command set.
package cli

import (
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"organizador/internal/config"
	"organizador/internal/log"
	"organizador/internal/services"
	"organizador/internal/storage"
)

// App carries the shared dependencies of every command. The ledger service
// opens lazily so commands that fail flag parsing never touch the database.
type App struct {
	Logger *log.Logger
	Config *config.Config
	svc    *services.LedgerService
}

// NewApp loads the environment, validates configuration and sets up logging.
// Exits the process on configuration errors.
func NewApp() *App {
	LoadEnvFile()
	cfg := config.Load()

	logger := SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return &App{Logger: logger, Config: cfg}
}

// Service opens the ledger service on first use.
func (a *App) Service() (*services.LedgerService, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	store, err := storage.NewStore(a.Config.SQLiteDBPath)
	if err != nil {
		return nil, err
	}
	a.svc = services.NewLedgerService(store)
	return a.svc, nil
}

// Close releases the service if it was opened.
func (a *App) Close() {
	if a.svc != nil {
		if err := a.svc.Close(); err != nil {
			a.Logger.Warn("Failed to close ledger service", log.FieldError, err)
		}
		a.svc = nil
	}
}

// SetupLogger initializes structured logging and installs it as the default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Register wires every command into the commander.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&importCmd{app: app}, "data")
	c.Register(&exportCmd{app: app}, "data")
	c.Register(&publishCmd{app: app}, "data")

	c.Register(&addCmd{app: app}, "ledger")
	c.Register(&rmCmd{app: app}, "ledger")
	c.Register(&paidCmd{app: app}, "ledger")
	c.Register(&listCmd{app: app}, "ledger")
	c.Register(&extraCmd{app: app}, "ledger")

	c.Register(&peopleCmd{app: app}, "reports")
	c.Register(&cardsCmd{app: app}, "reports")

	c.Register(&closingCmd{app: app}, "settings")
	c.Register(&settingsCmd{app: app}, "settings")
}
