package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"boutique_hotel/internal/storage/sqlstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Creates the accounts, bookings and journey tables. Safe to run repeatedly.`,
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, driver()); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	cmd.Printf("Schema applied (%s).\n", driver())
	return nil
}
