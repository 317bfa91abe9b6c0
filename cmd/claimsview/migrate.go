package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"claimsview/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the schema of the postgres source",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		db, err := database.OpenSQL(cmd.Context(), settings.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RunMigrations(db, settings.MigrationsPath); err != nil {
			return err
		}
		return printVersion(cmd, db, settings.MigrationsPath)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (one step by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		db, err := database.OpenSQL(cmd.Context(), settings.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RollbackMigrations(db, settings.MigrationsPath, steps); err != nil {
			return err
		}
		logger.Info("Rolled back migrations", zap.Int("steps", steps))
		return printVersion(cmd, db, settings.MigrationsPath)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		db, err := database.OpenSQL(cmd.Context(), settings.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		return printVersion(cmd, db, settings.MigrationsPath)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func printVersion(cmd *cobra.Command, db *sql.DB, migrationsPath string) error {
	version, dirty, err := database.MigrationVersion(db, migrationsPath)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d (DIRTY - migration failed)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
	return nil
}
