package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package state.
var migrateMu sync.Mutex

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "migrations")
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "migrations")
	os.Exit(1)
}

func migrate(db *sql.DB, driver string) error {
	var dialect string
	switch driver {
	case DriverSQLite:
		dialect = "sqlite3"
	case DriverPostgres:
		dialect = "postgres"
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations/"+driver); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
