package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DataDir != defaultDataDir {
		t.Fatalf("expected default data dir %s, got %s", defaultDataDir, cfg.DataDir)
	}
	if cfg.Source != defaultSource {
		t.Fatalf("expected default source %s, got %s", defaultSource, cfg.Source)
	}
	if cfg.Workers != defaultWorkers {
		t.Fatalf("expected default workers %d, got %d", defaultWorkers, cfg.Workers)
	}
	if cfg.Rate != defaultRate {
		t.Fatalf("expected default rate %s, got %s", defaultRate, cfg.Rate)
	}
	if cfg.Upload.Enabled() {
		t.Fatalf("expected upload disabled without endpoint and bucket")
	}
	if cfg.Metrics.Port != defaultMetricsPort {
		t.Fatalf("expected default metrics port %s, got %s", defaultMetricsPort, cfg.Metrics.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envDataDir, "/tmp/askdata")
	t.Setenv(envSource, "mlb")
	t.Setenv(envWorkers, "8")
	t.Setenv(envRate, "2s")
	t.Setenv(envUploadEndpoint, "http://store.example.com")
	t.Setenv(envUploadBucket, "askdata-prod")
	t.Setenv(envUploadInclude, "baseball/**, basketball/**")

	cfg := Load()

	if cfg.DataDir != "/tmp/askdata" {
		t.Fatalf("expected data dir override, got %s", cfg.DataDir)
	}
	if cfg.Source != "mlb" {
		t.Fatalf("expected source mlb, got %s", cfg.Source)
	}
	if cfg.Workers != 8 {
		t.Fatalf("expected workers 8, got %d", cfg.Workers)
	}
	if cfg.Rate != 2*time.Second {
		t.Fatalf("expected rate 2s, got %s", cfg.Rate)
	}
	if !cfg.Upload.Enabled() {
		t.Fatalf("expected upload enabled with endpoint and bucket")
	}
	if len(cfg.Upload.IncludePatterns) != 2 || cfg.Upload.IncludePatterns[1] != "basketball/**" {
		t.Fatalf("expected trimmed include patterns, got %v", cfg.Upload.IncludePatterns)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envRate, "not-a-duration")

	cfg := Load()

	if cfg.Rate != defaultRate {
		t.Fatalf("expected default rate on invalid value, got %s", cfg.Rate)
	}
}

func TestLoadNonPositiveIntFallsBack(t *testing.T) {
	t.Setenv(envWorkers, "0")

	cfg := Load()

	if cfg.Workers != defaultWorkers {
		t.Fatalf("expected default workers on non-positive value, got %d", cfg.Workers)
	}
}
