package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "travel_advisor/internal/adapters/http_server"
	"travel_advisor/internal/adapters/observability"
	redisad "travel_advisor/internal/adapters/redis"
	"travel_advisor/internal/adapters/unsplash"
	"travel_advisor/internal/app"
	"travel_advisor/internal/domain"
	"travel_advisor/internal/shared"
	mysqlrepo "travel_advisor/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	reg := observability.Registry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cache.Ping(ctx); err != nil {
		// the cache is an optimisation; requests fall through to MySQL
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
	}
	cancel()

	// images are optional: without a key every record gets the fallback photo
	var images domain.ImageSearcher
	if uc, err := unsplash.New(cfg.UnsplashBase, cfg.UnsplashKey, 5, unsplash.DefaultBreaker); err != nil {
		log.Warn().Err(err).Msg("unsplash disabled, using fallback image")
	} else {
		images = uc
	}

	q := app.NewQueryService(mysqlrepo.New(db), cache, images, app.QueryConfig{
		CacheTTL:      cfg.CacheTTL,
		FallbackImage: cfg.FallbackURL,
		BudgetFilter:  cfg.BudgetFilter,
	})

	// http
	srv := server.New(cfg.RateLimitPerMin)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, TopN: cfg.TopN})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
