package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "langnav.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
data:
  dir: "/srv/langnav"
  languages: "master/languages.tsv"
  census_glob: "census/*/*.tsv"

loader:
  timeout: "30s"
  regional_min_speakers: 500
  skip_supplemental: true

log:
  level: "debug"
  format: "text"

metrics:
  textfile_path: "/tmp/langnav.prom"
`

func validConfig(t *testing.T) *Config {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	return cfg
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Data.Dir != "/srv/langnav" {
		t.Errorf("data.dir = %q", cfg.Data.Dir)
	}
	if cfg.Data.Languages != "master/languages.tsv" {
		t.Errorf("data.languages = %q", cfg.Data.Languages)
	}
	if cfg.Data.CensusGlob != "census/*/*.tsv" {
		t.Errorf("data.census_glob = %q", cfg.Data.CensusGlob)
	}
	// Untouched keys keep their defaults.
	if cfg.Data.Glottolog != "glottolog.tsv" {
		t.Errorf("data.glottolog = %q, want default", cfg.Data.Glottolog)
	}

	if cfg.Loader.Timeout != 30*time.Second {
		t.Errorf("loader.timeout = %v, want 30s", cfg.Loader.Timeout)
	}
	if cfg.Loader.RegionalMinSpeakers != 500 {
		t.Errorf("loader.regional_min_speakers = %d, want 500", cfg.Loader.RegionalMinSpeakers)
	}
	if !cfg.Loader.SkipSupplemental {
		t.Error("loader.skip_supplemental should be true")
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Metrics.TextfilePath != "/tmp/langnav.prom" {
		t.Errorf("metrics.textfile_path = %q", cfg.Metrics.TextfilePath)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOADER_REGIONAL_MIN_SPEAKERS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Loader.RegionalMinSpeakers != 25 {
		t.Errorf("loader.regional_min_speakers = %d, want 25 (ENV override)", cfg.Loader.RegionalMinSpeakers)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATA_DIR", "/var/lib/langnav")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.Dir != "/var/lib/langnav" {
		t.Errorf("data.dir = %q", cfg.Data.Dir)
	}
	if cfg.Loader.Timeout != 2*time.Minute {
		t.Errorf("loader.timeout = %v, want default 2m", cfg.Loader.Timeout)
	}
	if cfg.Loader.RegionalMinSpeakers != 10 {
		t.Errorf("loader.regional_min_speakers = %d, want default 10", cfg.Loader.RegionalMinSpeakers)
	}
	if cfg.Loader.Concurrency != 8 {
		t.Errorf("loader.concurrency = %d, want default 8", cfg.Loader.Concurrency)
	}
	if cfg.Data.CensusGlob != "census/*.tsv" {
		t.Errorf("data.census_glob = %q, want default", cfg.Data.CensusGlob)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want default json", cfg.Log.Format)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/langnav.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for explicit missing path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "data: [unclosed")
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"empty data dir", func(c *Config) { c.Data.Dir = "  " }, "dir is required"},
		{"absolute file", func(c *Config) { c.Data.Locales = "/etc/locales.tsv" }, "locales"},
		{"dot-dot file", func(c *Config) { c.Data.Glottolog = "../glottolog.tsv" }, "glottolog"},
		{"bad glob", func(c *Config) { c.Data.CensusGlob = "census/[" }, "census_glob"},
		{"zero timeout", func(c *Config) { c.Loader.Timeout = 0 }, "loader.timeout"},
		{"zero concurrency", func(c *Config) { c.Loader.Concurrency = 0 }, "loader.concurrency"},
		{"negative threshold", func(c *Config) { c.Loader.RegionalMinSpeakers = -1 }, "regional_min_speakers"},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidate_EmptyOptionalFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.Data.Keyboards = ""
	cfg.Data.CensusGlob = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty optional entries should validate: %v", err)
	}
}
