package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DEFAULT_GOAL", "LOG_LEVEL", "LOG_DIR"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.DefaultGoal != 250 {
		t.Fatalf("expected default goal 250, got %d", cfg.DefaultGoal)
	}
	if cfg.Log.Dir != "" {
		t.Fatalf("expected file logging disabled, got %q", cfg.Log.Dir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/scoring")
	t.Setenv("DEFAULT_GOAL", "500")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_COMPRESS", "true")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %q", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/scoring" {
		t.Fatalf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.DefaultGoal != 500 {
		t.Fatalf("expected goal 500, got %d", cfg.DefaultGoal)
	}
	if cfg.DBMaxOpenConns != 3 {
		t.Fatalf("expected 3 open conns, got %d", cfg.DBMaxOpenConns)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", cfg.Log.Level)
	}
	if !cfg.Log.Compress {
		t.Fatal("expected compress enabled")
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("DEFAULT_GOAL", "-4")
	t.Setenv("DB_MAX_IDLE_CONNS", "many")

	cfg := Load()
	if cfg.DefaultGoal != 250 {
		t.Fatalf("expected fallback goal, got %d", cfg.DefaultGoal)
	}
	if cfg.DBMaxIdleConns != 10 {
		t.Fatalf("expected fallback idle conns, got %d", cfg.DBMaxIdleConns)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SCORING_TEST_A=from-file\nSCORING_TEST_B=from-file\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("SCORING_TEST_A", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("SCORING_TEST_B") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("SCORING_TEST_A"); got != "from-env" {
		t.Fatalf("expected existing value kept, got %q", got)
	}
	if got := os.Getenv("SCORING_TEST_B"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
