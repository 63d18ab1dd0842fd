package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/adapters/auth"
	"boutique_hotel/internal/adapters/blob"
	"boutique_hotel/internal/adapters/events"
	"boutique_hotel/internal/adapters/geodata"
	server "boutique_hotel/internal/adapters/http_server"
	"boutique_hotel/internal/adapters/observability"
	"boutique_hotel/internal/adapters/places"
	redisad "boutique_hotel/internal/adapters/redis"
	"boutique_hotel/internal/app"
	"boutique_hotel/internal/domain"
	"boutique_hotel/internal/shared"
	"boutique_hotel/internal/storage/sqlstore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// persistence is optional; without it the account and journey paths answer 503
	var store domain.Store
	if cfg.DBDSN != "" {
		db, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("database open failed")
		}
		defer db.Close()
		if cfg.DBDriver == sqlstore.DriverSQLite {
			if err := sqlstore.Migrate(ctx, db, cfg.DBDriver); err != nil {
				log.Fatal().Err(err).Msg("sqlite migrate failed")
			}
		}
		store = sqlstore.New(db)
		log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; photo cache disabled")
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	var lookup domain.PhotoLookup
	if cfg.PlacesKey != "" {
		pc, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("places client init failed")
		}
		lookup = pc
	}

	var remote domain.BlobStore
	if cfg.BlobToken != "" {
		rb, err := blob.NewRemote(cfg.BlobAPIURL, cfg.BlobToken)
		if err != nil {
			log.Fatal().Err(err).Msg("remote blob store init failed")
		}
		remote = rb
		log.Info().Msg("uploads go to the remote object store")
	}

	var publisher domain.EventPublisher = events.LogPublisher{}
	if cfg.NATSURL != "" {
		np, err := events.NewNATS(cfg.NATSURL)
		if err != nil {
			log.Warn().Err(err).Msg("nats unavailable; events are only logged")
		} else {
			defer np.Close()
			publisher = np
		}
	}

	catalog := app.NewCatalogService(geodata.Dir(cfg.GeoDataDir))
	if cfg.CatalogWatch {
		w, err := geodata.NewWatcher(cfg.GeoDataDir, catalog.Invalidate)
		if err != nil {
			log.Warn().Err(err).Str("dir", cfg.GeoDataDir).Msg("catalog watcher disabled")
		} else {
			catalog.EnableSnapshot()
			go w.Run(ctx)
		}
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL)

	srv := server.New(server.Options{CORSOrigins: cfg.CORSOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:      catalog,
		Accounts:     app.NewAccountService(store, auth.NewPasswords(), tokens, cfg.AllowSelfPromotion),
		Journeys:     app.NewJourneyService(store, blob.NewLocal(cfg.UploadDir), remote, publisher),
		Photos:       app.NewPhotoService(lookup, cache, cfg.PhotoCacheTTL),
		Sessions:     tokens,
		CookieSecure: cfg.CookieSecure,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
