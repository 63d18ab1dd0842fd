package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPass     string
	RedisDB       int
	PhotoCacheTTL time.Duration

	GeoDataDir   string
	CatalogWatch bool

	PlacesKey  string
	PlacesBase string
	PlacesRPS  int

	BlobToken  string
	BlobAPIURL string
	UploadDir  string

	JWTSecret          string
	SessionTTL         time.Duration
	CookieSecure       bool
	AllowSelfPromotion bool
	CORSOrigins        []string

	NATSURL     string
	WarmWorkers int
}

const devSecret = "dev-only-secret-change-in-prod"

// Load reads the environment, after an optional .env in the working
// directory. Real environment variables win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be read")
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		DBDriver: env("DB_DRIVER", "mysql"),
		DBDSN:    env("DB_DSN", ""),

		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		PhotoCacheTTL: time.Duration(atoi("PHOTO_CACHE_TTL_SECONDS", 86400)) * time.Second,

		GeoDataDir:   env("GEO_DATA_DIR", "data/geo"),
		CatalogWatch: boolean("CATALOG_WATCH", true),

		PlacesKey:  env("GOOGLE_MAPS_API_KEY", ""),
		PlacesBase: env("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesRPS:  atoi("PLACES_RPS", 0),

		BlobToken:  env("BLOB_READ_WRITE_TOKEN", ""),
		BlobAPIURL: env("BLOB_API_URL", "https://blob.vercel-storage.com"),
		UploadDir:  env("UPLOAD_DIR", "public"),

		JWTSecret:          env("JWT_SECRET", devSecret),
		SessionTTL:         duration("SESSION_TTL", 720*time.Hour),
		CookieSecure:       boolean("SESSION_COOKIE_SECURE", false),
		AllowSelfPromotion: boolean("ALLOW_SELF_PROMOTION", false),
		CORSOrigins:        list("CORS_ALLOWED_ORIGINS", []string{"*"}),

		NATSURL:     env("NATS_URL", ""),
		WarmWorkers: atoi("WARM_WORKERS", 8),
	}

	if c.DBDSN == "" {
		log.Warn().Msg("DB_DSN is empty; accounts and journeys answer 503")
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY is empty; photo lookups return no results")
	}
	if c.JWTSecret == devSecret && c.AppEnv != "dev" && c.AppEnv != "development" {
		log.Warn().Msg("JWT_SECRET is the development default")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolean(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func duration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func list(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
