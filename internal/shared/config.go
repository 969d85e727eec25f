package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	GeoapifyBase string
	GeoapifyKey  string
	UnsplashBase string
	UnsplashKey  string
	FallbackURL  string

	SeedWorkers   int
	SeedRandSeed  uint64
	SeedLocalLang string

	TopN            int
	BudgetFilter    bool
	RateLimitPerMin int
}

const DefaultFallbackImage = "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688"

// Load reads the environment, after merging an optional .env file from the
// working directory. Real environment variables win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		GeoapifyBase: env("GEOAPIFY_BASE_URL", "https://api.geoapify.com/v2"),
		GeoapifyKey:  env("GEOAPIFY_API_KEY", ""),
		UnsplashBase: env("UNSPLASH_BASE_URL", "https://api.unsplash.com"),
		UnsplashKey:  env("UNSPLASH_ACCESS_KEY", ""),
		FallbackURL:  env("FALLBACK_IMAGE_URL", DefaultFallbackImage),

		SeedWorkers:   atoi("SEED_WORKERS", 4),
		SeedRandSeed:  uint64(atoi("SEED_RANDOM_SEED", 42)),
		SeedLocalLang: env("SEED_LOCAL_LANG", "pl"),

		TopN:            atoi("RECOMMEND_TOP_N", 3),
		BudgetFilter:    boolEnv("RECOMMEND_BUDGET_FILTER", false),
		RateLimitPerMin: atoi("RATE_LIMIT_PER_MINUTE", 60),
	}
	if c.UnsplashKey == "" {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY is empty; recommendations will use the fallback image")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
