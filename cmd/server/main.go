package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"satwatch/internal/config"
	"satwatch/internal/handlers"
	"satwatch/internal/middleware"
	"satwatch/internal/repository"
	"satwatch/internal/service"
	"satwatch/pkg/database"
	"satwatch/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	// Загрузка .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== Satellite Telemetry Tracker Starting ===")

	cfg := config.Load()

	db, err := database.Connect(cfg.DB, cfg.App.Debug)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB:", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	healthChecks := map[string]handlers.HealthCheck{
		"database": sqlDB.PingContext,
	}

	// Redis опционален: без него список спутников читается из БД
	cacheRepo := repository.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient, err := redis.Connect(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()

		cacheRepo = repository.NewCacheRepository(redisClient)
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	telemetryRepo := repository.NewTelemetryRepository(db)
	telemetryService := service.NewTelemetryService(telemetryRepo, cacheRepo, cfg.Redis.CacheTTL)

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics, err := middleware.NewHTTPMetrics(nil)
	if err != nil {
		log.Fatal("Failed to register metrics:", err)
	}

	opts := handlers.RouterOptions{
		Service:      telemetryService,
		HealthChecks: healthChecks,
		Metrics:      metrics,
		FrontendURL:  cfg.App.FrontendURL,
	}

	// Rate limiting (только для продакшена)
	if !cfg.App.Debug {
		opts.RateLimiter = middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		log.Printf("Rate limiting enabled: %d req/sec per IP, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r := handlers.NewRouter(opts)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/", cfg.App.Port)
		log.Printf("Telemetry list at http://localhost:%s/telemetry/", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
