// Package config handles report generator configuration loading.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jobmate/reportgen/pkg/api"
	"github.com/jobmate/reportgen/pkg/errors"
)

// Config is the root configuration structure.
type Config struct {
	Server  api.ServerConfig `yaml:"server"`
	Report  ReportConfig     `yaml:"report"`
	Storage StorageConfig    `yaml:"storage"`
	Charts  ChartsConfig     `yaml:"charts"`
}

// ReportConfig holds document defaults.
type ReportConfig struct {
	Title      string  `yaml:"title"`
	Margin     float64 `yaml:"margin"`
	FontSize   float64 `yaml:"font_size"`
	LineHeight float64 `yaml:"line_height"`

	// Verify re-validates every written PDF with pdfcpu.
	Verify bool `yaml:"verify"`
}

// StorageConfig holds the data directories.
type StorageConfig struct {
	// DataDir holds the session JSON files.
	DataDir string `yaml:"data_dir"`

	// ReportsDir receives generated PDFs.
	ReportsDir string `yaml:"reports_dir"`
}

// ChartsConfig holds chart rendering settings.
type ChartsConfig struct {
	// FontsDir points at replacement TTFs (regular.ttf, bold.ttf) for
	// chart labels. Empty means the built-in fonts.
	FontsDir string `yaml:"fonts_dir"`

	// Width and Height are the chart display size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Oversample is the backing-store multiplier for crisp PDF embedding.
	Oversample int `yaml:"oversample"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: *api.DefaultServerConfig(),
		Report: ReportConfig{
			Title:      "Interview Report",
			Margin:     20,
			FontSize:   12,
			LineHeight: 1.5,
		},
		Storage: StorageConfig{
			DataDir:    "./data/sessions",
			ReportsDir: "./data/reports",
		},
		Charts: ChartsConfig{
			Width:      520,
			Height:     300,
			Oversample: 2,
		},
	}
}

// Load loads configuration from a file, layering it over the defaults and
// then applying environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError(errors.ErrConfigNotFound, "config file not found").
				WithContext("path", path)
		}
		return nil, errors.WrapConfig(err, errors.ErrConfigParseFailed, "cannot read config file").
			WithContext("path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrConfigParseFailed, "cannot parse config file").
			WithContext("path", path)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns defaults (plus
// environment overrides) when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}

	return Load(path)
}

// Environment variable overrides. Set in the shell or through a .env file.
const (
	EnvHost     = "REPORTGEN_HOST"
	EnvPort     = "REPORTGEN_PORT"
	EnvDataDir  = "REPORTGEN_DATA_DIR"
	EnvFontsDir = "REPORTGEN_FONTS_DIR"
)

func (c *Config) applyEnv() {
	if host := os.Getenv(EnvHost); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv(EnvPort); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			c.Server.Port = n
		}
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.Storage.DataDir = dir
	}
	if dir := os.Getenv(EnvFontsDir); dir != "" {
		c.Charts.FontsDir = dir
	}
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.NewConfigErrorf(errors.ErrConfigInvalid, "invalid port %d", c.Server.Port).
			WithSuggestion("use a port between 1 and 65535")
	}
	if c.Report.Margin < 0 || c.Report.Margin > 80 {
		return errors.NewConfigErrorf(errors.ErrConfigInvalid, "invalid margin %.1f", c.Report.Margin).
			WithSuggestion("use a margin between 0 and 80 millimeters")
	}
	if c.Report.FontSize < 0 || c.Report.FontSize > 48 {
		return errors.NewConfigErrorf(errors.ErrConfigInvalid, "invalid font size %.1f", c.Report.FontSize)
	}
	if c.Storage.DataDir == "" {
		return errors.NewConfigError(errors.ErrConfigInvalid, "data directory is required")
	}
	if c.Charts.Oversample < 0 || c.Charts.Oversample > 8 {
		return errors.NewConfigErrorf(errors.ErrConfigInvalid, "invalid oversample %d", c.Charts.Oversample).
			WithSuggestion("use an oversample factor between 1 and 8")
	}
	return nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapConfig(err, errors.ErrConfigWriteFailed, "cannot create config directory").
			WithContext("dir", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.WrapConfig(err, errors.ErrConfigWriteFailed, "cannot encode config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapConfig(err, errors.ErrConfigWriteFailed, "cannot write config file").
			WithContext("path", path)
	}
	return nil
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if _, err := os.Stat("reportgen.yaml"); err == nil {
		return "reportgen.yaml"
	}
	if _, err := os.Stat("config/reportgen.yaml"); err == nil {
		return "config/reportgen.yaml"
	}
	return "reportgen.yaml"
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := Default()
	return cfg.Save(path)
}
