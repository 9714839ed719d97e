package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoad_YAMLFileAndEnvOverride(t *testing.T) {
	p := writeFile(t, "config.yaml", `
env: production
api:
  base_url: http://api.example.test/
  timeout: 5s
session:
  store: memory
devapi:
  addr: ":9000"
  db:
    driver: sqlite
    dsn: "file::memory:"
  otp:
    length: 4
    ttl: 1m
`)
	t.Setenv("EDUADMIN_CONFIG_PATH", p)
	t.Setenv("EDUADMIN_API_TIMEOUT", "12s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://api.example.test" {
		t.Fatalf("base_url=%q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Duration != 12*time.Second {
		t.Fatalf("timeout=%v", cfg.API.Timeout.Duration)
	}
	if cfg.Session.Store != "memory" {
		t.Fatalf("store=%q", cfg.Session.Store)
	}
	if cfg.DevAPI.Addr != ":9000" || cfg.DevAPI.OTP.Length != 4 || cfg.DevAPI.OTP.TTL.Duration != time.Minute {
		t.Fatalf("devapi=%+v", cfg.DevAPI)
	}
}

func TestLoad_JSONDurations(t *testing.T) {
	p := writeFile(t, "config.json", `{
		"api": {"base_url": "http://localhost:8000", "timeout": 1000000000},
		"session": {"store": "memory"},
		"devapi": {"db": {"driver": "sqlite", "dsn": "file::memory:"}, "token_ttl": "2h"}
	}`)
	t.Setenv("EDUADMIN_CONFIG_PATH", p)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Timeout.Duration != time.Second {
		t.Fatalf("timeout=%v", cfg.API.Timeout.Duration)
	}
	if cfg.DevAPI.TokenTTL.Duration != 2*time.Hour {
		t.Fatalf("token_ttl=%v", cfg.DevAPI.TokenTTL.Duration)
	}
	// Omitted OTP settings fall back to defaults.
	if cfg.DevAPI.OTP.Length != 6 {
		t.Fatalf("otp length=%d", cfg.DevAPI.OTP.Length)
	}
}

func TestLoad_RedisStoreRequiresAddr(t *testing.T) {
	p := writeFile(t, "config.yaml", "session:\n  store: redis\n")
	t.Setenv("EDUADMIN_CONFIG_PATH", p)
	t.Setenv("REDIS_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for redis store without address")
	}
}

func TestLoad_InvalidStore(t *testing.T) {
	p := writeFile(t, "config.yaml", "session:\n  store: cookie\n")
	t.Setenv("EDUADMIN_CONFIG_PATH", p)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}
