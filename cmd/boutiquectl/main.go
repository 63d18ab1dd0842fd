package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/adapters/observability"
	"boutique_hotel/internal/shared"
)

func main() {
	cfg = shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, "boutiquectl")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
