package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Review.AcceptThreshold != 6.0 {
		t.Errorf("threshold = %v, want 6.0", cfg.Review.AcceptThreshold)
	}
	if cfg.Review.Model != "gemini-2.5-flash-lite" {
		t.Errorf("model = %q", cfg.Review.Model)
	}
	if cfg.Scheduler.RefreshInterval() != 24*time.Hour {
		t.Errorf("interval = %v", cfg.Scheduler.RefreshInterval())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
logging:
  level: debug
database:
  dsn: postgres://review:secret@db:5432/pubroot
review:
  acceptThreshold: 7.5
scheduler:
  refreshIntervalHours: 6
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	if cfg.Database.DSN != "postgres://review:secret@db:5432/pubroot" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Review.AcceptThreshold != 7.5 {
		t.Errorf("threshold = %v", cfg.Review.AcceptThreshold)
	}
	if cfg.Scheduler.RefreshInterval() != 6*time.Hour {
		t.Errorf("interval = %v", cfg.Scheduler.RefreshInterval())
	}
	// Untouched sections keep their defaults.
	if cfg.Review.Model != "gemini-2.5-flash-lite" {
		t.Errorf("model = %q", cfg.Review.Model)
	}
}

func TestLoadEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("review:\n  apiKey: from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(geminiAPIKeyEnv, "from-env")
	t.Setenv(githubRepoEnv, "pubroot/journal")

	cfg := Load()

	if cfg.Review.APIKey != "from-env" {
		t.Errorf("api key = %q, want env value", cfg.Review.APIKey)
	}
	if cfg.GitHub.Repository != "pubroot/journal" {
		t.Errorf("repository = %q", cfg.GitHub.Repository)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.Review.AcceptThreshold != 6.0 {
		t.Errorf("expected defaults, got %+v", cfg.Review)
	}
}
