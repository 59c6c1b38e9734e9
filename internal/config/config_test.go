package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingDirUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scoring.MinScore != 40 || cfg.Scoring.HighValueScore != 70 {
		t.Fatalf("unexpected scoring defaults: %#v", cfg.Scoring)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Server.Port != 8080 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.Sources == nil {
		t.Fatal("expected non-nil sources map")
	}
}

func TestLoadFromYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `
database:
  driver: postgres
  dsn: postgres://localhost/painradar
  conn_max_lifetime: 30m
scoring:
  min_score: 55
sources:
  github:
    base_url: https://api.github.com
    repositories: [a/b]
    max_results: 10
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GITHUB_TOKEN", "gh-secret")
	t.Setenv("MIN_OPPORTUNITY_SCORE", "60")
	t.Setenv("DATABASE_DSN", "")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("unexpected database config: %#v", cfg.Database)
	}
	if cfg.Scoring.MinScore != 60 {
		t.Fatalf("env override not applied: %d", cfg.Scoring.MinScore)
	}
	gh := cfg.Source("github")
	if gh.AuthToken != "gh-secret" || gh.MaxResults != 10 || len(gh.Repositories) != 1 {
		t.Fatalf("unexpected github config: %#v", gh)
	}
	if gh.Timeout != 30 {
		t.Fatalf("expected default timeout, got %d", gh.Timeout)
	}
}
