package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"voyage_booking/internal/adapters/catalog"
	"voyage_booking/internal/adapters/observability"
	redisad "voyage_booking/internal/adapters/redis"
	"voyage_booking/internal/app"
	"voyage_booking/internal/shared"
	mysqlrepo "voyage_booking/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	feed, err := catalog.New(cfg.CatalogBase, cfg.CatalogKey, cfg.CatalogRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	seed := app.NewSeedService(feed, repo, cache)

	dests, err := seed.FetchDestinations(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch destinations failed")
	}
	events, err := seed.FetchEvents(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch events failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, d := range dests {
		d := d

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := seed.SeedDestination(ctx, d); err != nil {
				log.Warn().Int64("id", d.ID).Err(err).Msg("seed destination failed")
				return
			}
			log.Info().Int64("id", d.ID).Str("name", d.Name).Msg("destination seeded")
		}()
	}

	for _, e := range events {
		e := e

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := seed.SeedEvent(ctx, e); err != nil {
				log.Warn().Int64("id", e.ID).Err(err).Msg("seed event failed")
				return
			}
			log.Info().Int64("id", e.ID).Str("name", e.Name).Msg("event seeded")
		}()
	}

	wg.Wait()
	log.Info().Int("destinations", len(dests)).Int("events", len(events)).Msg("seeding completed")
}
