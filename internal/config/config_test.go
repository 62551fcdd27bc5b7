package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "STORE_BACKEND", "JWT_SECRET", "DATA_DIR", "SEQUENCE_BACKEND", "DB_PORT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StoreBackend != BackendJSON || cfg.DataDir != "hostel_data" || cfg.ExportDir != "hostel_exports" {
		t.Fatalf("store defaults = %+v", cfg)
	}
	if cfg.AccessTTLMin != 15 || cfg.RefreshTTLDays != 7 || cfg.BcryptCost != 10 {
		t.Fatalf("auth defaults = %d %d %d", cfg.AccessTTLMin, cfg.RefreshTTLDays, cfg.BcryptCost)
	}
	if cfg.JWTSecret != devJWTSecret || !cfg.StoreStrictLoad || cfg.OverdueCron != "15 2 * * *" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Cache.Prefix != "hostel:cache" || !cfg.Cache.Methods["GET"] {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
}

func TestLoadRequiresSecretInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadSQLBackend(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PORT", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected missing DB_USER error")
	}
	t.Setenv("DB_USER", "hostel")
	t.Setenv("DB_NAME", "hostel")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.UsesSQL() || cfg.DBPort != "5432" {
		t.Fatalf("sql cfg = %+v", cfg)
	}
}

func TestEmptyOverdueCronDisablesSweep(t *testing.T) {
	t.Setenv("OVERDUE_CRON", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OverdueCron != "" {
		t.Fatalf("cron = %q", cfg.OverdueCron)
	}
}

func TestRateLimitNormalized(t *testing.T) {
	c := RateLimitConfig{Capacity: 0, RefillInterval: 2 * time.Second, TTL: time.Second}.normalized()
	if c.Capacity != 1 || c.RefillTokens != 1 || c.TTL != 10*time.Second || c.LoginCapacity != 1 {
		t.Fatalf("normalized = %+v", c)
	}
}
