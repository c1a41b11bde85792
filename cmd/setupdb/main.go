// Command setupdb clears the telemetry table and fills it with random sample
// readings.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"satwatch/internal/config"
	"satwatch/internal/repository"
	"satwatch/internal/service"
	"satwatch/pkg/database"
	"satwatch/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	count := flag.Int("count", cfg.Seed.Count, "number of sample entries to create")
	flag.Parse()

	db, err := database.Connect(cfg.DB, cfg.App.Debug)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// кэш списка спутников тоже нужно сбросить
	cacheRepo := repository.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient, err := redis.Connect(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient)
	}

	svc := service.NewTelemetryService(repository.NewTelemetryRepository(db), cacheRepo, cfg.Redis.CacheTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, err := svc.Seed(ctx, *count)
	if err != nil {
		log.Fatal("Failed to seed telemetry:", err)
	}

	log.Printf("Successfully created %d sample telemetry entries", created)
}
