package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"boutique_hotel/internal/adapters/geodata"
	"boutique_hotel/internal/adapters/observability"
	"boutique_hotel/internal/adapters/places"
	redisad "boutique_hotel/internal/adapters/redis"
	"boutique_hotel/internal/app"
	"boutique_hotel/internal/domain"
	"boutique_hotel/internal/shared"
)

func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "photowarmer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required: there is no cache to warm")
	}
	client, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	hotels := app.NewCatalogService(geodata.Dir(cfg.GeoDataDir)).All()
	photos := app.NewPhotoService(client, cache, cfg.PhotoCacheTTL)

	workers := cfg.WarmWorkers
	if workers <= 0 {
		workers = 1
	}
	log.Info().
		Str("dir", cfg.GeoDataDir).
		Int("hotels", len(hotels)).
		Int("workers", workers).
		Msg("photo warmer starting")

	fetched, cached, failed := warm(ctx, photos, hotels, workers)

	log.Info().
		Int64("fetched", fetched).
		Int64("cached", cached).
		Int64("failed", failed).
		Msg("photo warming completed")
}

func warm(ctx context.Context, photos *app.PhotoService, hotels []domain.Hotel, workers int) (fetched, cached, failed int64) {
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, h := range hotels {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("stopping early")
			break
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("stopping early")
			break
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			hit, err := photos.Warm(ctx, h)
			switch {
			case err != nil:
				atomic.AddInt64(&failed, 1)
				log.Warn().Str("id", h.ID).Err(err).Msg("warm failed")
			case hit:
				atomic.AddInt64(&cached, 1)
				log.Debug().Str("id", h.ID).Msg("already cached")
			default:
				atomic.AddInt64(&fetched, 1)
				log.Info().Str("id", h.ID).Msg("warm ok")
			}
		}(h)
	}

	wg.Wait()
	return fetched, cached, failed
}
