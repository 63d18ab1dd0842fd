package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spf13/cobra"

	"boutique_hotel/internal/shared"
	"boutique_hotel/internal/storage/sqlstore"
)

// cfg holds environment defaults; flags override them per invocation.
var cfg shared.Config

var (
	dbDriver string
	dbDSN    string
	geoDir   string
)

var rootCmd = &cobra.Command{
	Use:   "boutiquectl",
	Short: "Operate the boutique hotel service",
	Long: `Operator tooling for the boutique hotel service: apply the database
schema, grant or revoke admin rights, remove journeys and inspect the catalog.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "database driver: mysql or sqlite (default DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "dsn", "", "database DSN (default DB_DSN)")
	rootCmd.PersistentFlags().StringVar(&geoDir, "geo-dir", "", "directory of the geo collections (default GEO_DATA_DIR)")
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func driver() string { return or(dbDriver, or(cfg.DBDriver, sqlstore.DriverMySQL)) }

// openDB opens the configured database. The caller closes it.
func openDB(ctx context.Context) (*sql.DB, error) {
	dsn := or(dbDSN, cfg.DBDSN)
	if dsn == "" {
		return nil, errors.New("no database configured: set DB_DSN or --dsn")
	}
	return sqlstore.Open(ctx, driver(), dsn)
}
