package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PORT", "REDIS_ENABLED", "CACHE_TTL", "SEED_COUNT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.Port != "5432" {
		t.Fatalf("expected postgres on 5432, got %s on %s", cfg.DB.Driver, cfg.DB.Port)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("expected redis to be disabled by default")
	}
	if cfg.Redis.CacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache ttl, got %v", cfg.Redis.CacheTTL)
	}
	if cfg.Seed.Count != 100 {
		t.Fatalf("expected 100 seed records, got %d", cfg.Seed.Count)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_RPS", "3")
	t.Setenv("SEED_COUNT", "not-a-number")

	cfg := Load()

	if cfg.DB.Port != "3306" {
		t.Fatalf("expected mysql default port, got %q", cfg.DB.Port)
	}
	if !cfg.Redis.Enabled || cfg.Redis.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.RateLimit.RequestsPerSecond != 3 {
		t.Fatalf("expected 3 rps, got %d", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.Seed.Count != 100 {
		t.Fatalf("expected invalid SEED_COUNT to fall back to 100, got %d", cfg.Seed.Count)
	}
}
