package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "portfolio_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.MongoDB.Database != "portfolio_test" {
		t.Fatalf("database = %q, want portfolio_test", cfg.MongoDB.Database)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("default port = %q, want 5000", cfg.Server.Port)
	}
	if cfg.Uploads.MaxBytes != 10<<20 {
		t.Fatalf("default upload limit = %d, want %d", cfg.Uploads.MaxBytes, int64(10<<20))
	}
	if cfg.RateLimit.RPS != 10.0 {
		t.Fatalf("default rate limit rps = %v, want 10.0", cfg.RateLimit.RPS)
	}
}
