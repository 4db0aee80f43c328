package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sweetslice/storefront/pkg/config"
	"github.com/sweetslice/storefront/pkg/db"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/migrate"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "up|down|redo|status|current|version|create|validate")
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "where -cmd=create writes the new file")
	flag.StringVar(&opts.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target YYYYMMDDHHMMSS for -cmd=version")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", opts.cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	// Neither of these needs a database.
	switch opts.cmd {
	case "create":
		if opts.name == "" {
			return errors.New("-name is required")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return err
		}
		fmt.Println("created", path)
		return nil
	case "validate":
		if err := migrate.ValidateEmbedded(); err != nil {
			return err
		}
		fmt.Println("embedded migrations ok")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !cfg.DB.Enabled() {
		return fmt.Errorf("%s is %q; set sqlite or postgres", config.EnvDBDriver, cfg.DB.Driver)
	}

	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"cmd":       opts.cmd,
		"db_driver": cfg.DB.Driver,
	})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer client.Close()

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	switch opts.cmd {
	case "up", "down", "redo", "status":
		err = migrate.Run(ctx, sqlDB, cfg.DB.Driver, opts.cmd)
	case "current":
		var v int64
		if v, err = migrate.CurrentVersion(ctx, sqlDB, cfg.DB.Driver); err == nil {
			fmt.Println(v)
		}
	case "version":
		err = migrate.MigrateToVersion(ctx, sqlDB, cfg.DB.Driver, opts.version)
	default:
		return fmt.Errorf("unknown command")
	}
	if err != nil {
		return err
	}
	logg.Info(ctx, "migrate finished")
	return nil
}
