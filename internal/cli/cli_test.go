package cli

import (
	"flag"
	"log/slog"
	"path/filepath"
	"testing"

	"organizador/internal/config"
	"organizador/internal/log"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := &App{
		Logger: log.New(log.Config{Level: slog.LevelError, Component: log.ComponentApp}),
		Config: &config.Config{
			SQLiteDBPath: filepath.Join(t.TempDir(), "organizador.db"),
			ExportDir:    t.TempDir(),
			LogLevel:     "error",
		},
	}
	t.Cleanup(app.Close)
	return app
}

func parseFlags(t *testing.T, cmd interface{ SetFlags(*flag.FlagSet) }, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags %v: %v", args, err)
	}
	return fs
}
