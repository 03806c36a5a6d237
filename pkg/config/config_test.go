package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jobmate/reportgen/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8084 {
		t.Errorf("expected default port 8084, got %d", cfg.Server.Port)
	}
	if cfg.Report.Title != "Interview Report" {
		t.Errorf("expected default title, got %q", cfg.Report.Title)
	}
	if cfg.Report.Margin != 20 {
		t.Errorf("expected default margin 20, got %v", cfg.Report.Margin)
	}
	if cfg.Storage.DataDir == "" {
		t.Error("expected a default data directory")
	}
	if cfg.Charts.Oversample != 2 {
		t.Errorf("expected default oversample 2, got %d", cfg.Charts.Oversample)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportgen.yaml")
	content := `
server:
  port: 9000
report:
  title: "Custom Report"
storage:
  data_dir: /tmp/sessions
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Report.Title != "Custom Report" {
		t.Errorf("expected custom title, got %q", cfg.Report.Title)
	}
	if cfg.Storage.DataDir != "/tmp/sessions" {
		t.Errorf("expected overridden data dir, got %q", cfg.Storage.DataDir)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Report.Margin != 20 {
		t.Errorf("expected default margin 20, got %v", cfg.Report.Margin)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.IsCode(err, errors.ErrConfigNotFound) {
		t.Errorf("expected CONFIG_NOT_FOUND, got %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.IsCode(err, errors.ErrConfigParseFailed) {
		t.Errorf("expected CONFIG_PARSE_FAILED, got %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8084 {
		t.Errorf("expected defaults for empty path, got port %d", cfg.Server.Port)
	}

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Report.Title != "Interview Report" {
		t.Errorf("expected defaults for missing file, got %q", cfg.Report.Title)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "7777")
	t.Setenv(EnvDataDir, "/srv/sessions")
	t.Setenv(EnvFontsDir, "/srv/fonts")

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("expected env port 7777, got %d", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/srv/sessions" {
		t.Errorf("expected env data dir, got %q", cfg.Storage.DataDir)
	}
	if cfg.Charts.FontsDir != "/srv/fonts" {
		t.Errorf("expected env fonts dir, got %q", cfg.Charts.FontsDir)
	}
}

func TestEnvInvalidPortIgnored(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8084 {
		t.Errorf("expected default port kept, got %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"bad margin", func(c *Config) { c.Report.Margin = 200 }},
		{"bad font size", func(c *Config) { c.Report.FontSize = 100 }},
		{"empty data dir", func(c *Config) { c.Storage.DataDir = "" }},
		{"bad oversample", func(c *Config) { c.Charts.Oversample = 16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.IsCode(err, errors.ErrConfigInvalid) {
				t.Errorf("expected CONFIG_INVALID, got %v", err)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "reportgen.yaml")

	cfg := Default()
	cfg.Server.Port = 9999
	cfg.Charts.FontsDir = "/fonts"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("expected saved port 9999, got %d", loaded.Server.Port)
	}
	if loaded.Charts.FontsDir != "/fonts" {
		t.Errorf("expected saved fonts dir, got %q", loaded.Charts.FontsDir)
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportgen.yaml")

	if err := InitConfig(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file created: %v", err)
	}

	// A second init must not overwrite.
	cfg := Default()
	cfg.Server.Port = 1234
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	if err := InitConfig(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 1234 {
		t.Errorf("expected existing config preserved, got port %d", loaded.Server.Port)
	}
}
