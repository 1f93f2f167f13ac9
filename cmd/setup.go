package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songhub/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a configuration file from the embedded defaults.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")

	r.logger.Info("creating config file", "path", path)
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Config written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set api.base_url to your catalog backend\n")
	r.writePlain("2. Replace session.secret before running 'songhub serve'\n")
	r.writePlain("3. Run 'songhub setup database'\n")
	return nil
}

// SetupDatabase initializes the credential database and runs migrations.
//
// With --rollback the most recent migration is reverted instead.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Database
	r.logger.Info("initializing database", "path", cfg.Path)

	if cmd.Bool("rollback") {
		db, err := shared.NewDatabase(cfg.Path)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()

		if err := shared.RollbackMigration(ctx, db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return r.writePlain("✓ Rolled back latest migration in %s\n", cfg.Path)
	}

	db, err := shared.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", cfg.Path)
	return r.writePlain("✓ Database ready at %s\n", cfg.Path)
}
