package migrate

import (
	"context"
	"fmt"

	"github.com/sweetslice/storefront/pkg/config"
	"github.com/sweetslice/storefront/pkg/db"
	"github.com/sweetslice/storefront/pkg/logger"
)

// MaybeAutoRun brings the schema up to date at startup. It does nothing unless a database is
// configured and SWEETSLICE_DB_AUTO_MIGRATE is set.
func MaybeAutoRun(ctx context.Context, cfg config.DBConfig, logg *logger.Logger, client *db.Client) error {
	if client == nil || !cfg.AutoMigrate || !cfg.Enabled() {
		return nil
	}
	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	ctx = logg.WithField(ctx, "db_driver", cfg.Driver)
	before, err := CurrentVersion(ctx, sqlDB, cfg.Driver)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := Run(ctx, sqlDB, cfg.Driver, "up"); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	after, err := CurrentVersion(ctx, sqlDB, cfg.Driver)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if after == before {
		logg.Debug(logg.WithField(ctx, "schema_version", after), "schema already current")
		return nil
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"from_version": before,
		"to_version":   after,
	}), "schema migrated")
	return nil
}
