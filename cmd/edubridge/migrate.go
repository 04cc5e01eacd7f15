package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/edubridge/internal/config"
	"github.com/Veraticus/edubridge/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates on startup; this one is for preparing a
database ahead of time or checking where it stands.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current schema version without applying changes")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")

	db, err := config.LoadDatabase(viper.GetViper())
	if err != nil {
		return err
	}
	where := db.Path
	if db.Driver == config.DriverPostgres {
		where = "postgres"
	}

	p, err := openBackend(ctx, db)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	if status {
		current, err := p.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "📊 %s\n   schema version %d of %d\n", where, current, storage.ExpectedSchemaVersion)
		return err
	}

	slog.Info("Running database migrations", "driver", db.Driver, "database", where)
	if err := p.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✅ Database at schema version %d\n", storage.ExpectedSchemaVersion)
	return err
}
