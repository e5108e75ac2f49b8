package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFillsDefaults(t *testing.T) {
	var cfg Config
	err := Parse([]byte("projection:\n  years: 7\n"), &cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Projection.Years != 7 {
		t.Errorf("expected 7 years, got %d", cfg.Projection.Years)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if len(cfg.Sensitivity.Steps) != 5 {
		t.Errorf("expected 5 default sensitivity steps, got %d", len(cfg.Sensitivity.Steps))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DCF_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("DCF_YEARS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Projection.Years != 5 {
		t.Errorf("expected 5 years, got %d", cfg.Projection.Years)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dcf.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DCF_CONFIG", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "7070")
	t.Setenv("DCF_YEARS", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("expected PORT override, got %q", cfg.Server.Addr)
	}
	if cfg.Projection.Years != 10 {
		t.Errorf("expected 10 years, got %d", cfg.Projection.Years)
	}
}

func TestLoadRejectsBadYears(t *testing.T) {
	t.Setenv("DCF_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DCF_YEARS", "zero")

	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for invalid DCF_YEARS")
	}
}
