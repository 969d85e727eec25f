package main

import (
	"context"
	"database/sql"
	"flag"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"travel_advisor/internal/adapters/geoapify"
	"travel_advisor/internal/adapters/observability"
	redisad "travel_advisor/internal/adapters/redis"
	"travel_advisor/internal/app"
	"travel_advisor/internal/shared"
	mysqlrepo "travel_advisor/internal/storage/mysql"
)

func main() {
	force := flag.Bool("force", false, "seed even when the catalog already has destinations")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "seeder")

	log.Info().
		Str("base", cfg.GeoapifyBase).
		Int("workers", cfg.SeedWorkers).
		Str("lang", cfg.SeedLocalLang).
		Uint64("seed", cfg.SeedRandSeed).
		Bool("force", *force).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	places, err := geoapify.New(cfg.GeoapifyBase, cfg.GeoapifyKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Geoapify client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	svc := app.NewSeedingService(places, mysqlrepo.New(db), cache, app.NewSeededBudgets(cfg.SeedRandSeed), app.SeedConfig{
		LocalLang: cfg.SeedLocalLang,
		Workers:   cfg.SeedWorkers,
	})

	start := time.Now()
	n, err := svc.Seed(ctx, *force)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Int("destinations", n).Dur("took", time.Since(start)).Msg("seeding completed")
}
