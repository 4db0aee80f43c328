package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/sweetslice/storefront/pkg/config"
)

// DefaultDir is where new migration files are written during development.
const DefaultDir = "pkg/migrate/migrations"

const embeddedDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Dialect maps a configured database driver onto goose's dialect name.
func Dialect(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case config.DBDriverPostgres:
		return "postgres", nil
	case config.DBDriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("no migration dialect for driver %q", driver)
}

// withGoose points goose at the embedded migrations for driver and runs fn while holding the lock.
func withGoose(db *sql.DB, driver string, fn func() error) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn()
}

// Run executes a goose command such as up, down, status or redo.
func Run(ctx context.Context, db *sql.DB, driver string, command string, args ...string) error {
	return withGoose(db, driver, func() error {
		if err := goose.RunContext(ctx, command, db, embeddedDir, args...); err != nil {
			return fmt.Errorf("goose %s: %w", command, err)
		}
		return nil
	})
}

// CurrentVersion reports the schema version recorded in the database, creating the goose
// version table when it is missing.
func CurrentVersion(ctx context.Context, db *sql.DB, driver string) (version int64, err error) {
	err = withGoose(db, driver, func() error {
		version, err = goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}
		return nil
	})
	return version, err
}

// MigrateToVersion moves the schema up or down until it sits at target (YYYYMMDDHHMMSS, or 0
// for an empty schema).
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, target string) error {
	if target == "" {
		return fmt.Errorf("target version is required")
	}
	want, err := strconv.ParseInt(target, 10, 64)
	if err != nil || want < 0 {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS)", target)
	}

	return withGoose(db, driver, func() error {
		have, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}
		switch {
		case have < want:
			err = goose.UpToContext(ctx, db, embeddedDir, want)
		case have > want:
			err = goose.DownToContext(ctx, db, embeddedDir, want)
		}
		if err != nil {
			return fmt.Errorf("goose migrate %d -> %d: %w", have, want, err)
		}
		return nil
	})
}
