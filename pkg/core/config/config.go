// Package config loads calculator settings from config/dcf.yaml with
// environment overrides from .env.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultPath is used when DCF_CONFIG is not set.
const DefaultPath = "config/dcf.yaml"

type Config struct {
	Projection  ProjectionConfig  `yaml:"projection"`
	Server      ServerConfig      `yaml:"server"`
	Export      ExportConfig      `yaml:"export"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
}

type ProjectionConfig struct {
	Years int `yaml:"years"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
}

type ExportConfig struct {
	Creator    string `yaml:"creator"`
	FilePrefix string `yaml:"file_prefix"`
}

// SensitivityConfig holds the absolute perturbations applied to both grid axes.
type SensitivityConfig struct {
	Steps []float64 `yaml:"steps"`
}

// Default returns the settings the calculator ships with.
func Default() Config {
	return Config{
		Projection: ProjectionConfig{Years: 5},
		Server:     ServerConfig{Addr: ":8080", LogLevel: "info"},
		Export: ExportConfig{
			Creator:    "DCF Super Calculator v1.0",
			FilePrefix: "DCF_Advanced_Report",
		},
		Sensitivity: SensitivityConfig{Steps: []float64{-0.01, -0.005, 0, 0.005, 0.01}},
	}
}

// Load reads .env (if present), then the YAML file at path, then applies
// environment overrides. A missing YAML file is not an error.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if env := os.Getenv("DCF_CONFIG"); env != "" {
		path = env
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Parse(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML over cfg and fills anything left empty from Default.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	def := Default()
	if cfg.Projection.Years <= 0 {
		cfg.Projection.Years = def.Projection.Years
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = def.Server.LogLevel
	}
	if cfg.Export.Creator == "" {
		cfg.Export.Creator = def.Export.Creator
	}
	if cfg.Export.FilePrefix == "" {
		cfg.Export.FilePrefix = def.Export.FilePrefix
	}
	if len(cfg.Sensitivity.Steps) == 0 {
		cfg.Sensitivity.Steps = def.Sensitivity.Steps
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Server.LogLevel = lvl
	}
	if y := os.Getenv("DCF_YEARS"); y != "" {
		years, err := strconv.Atoi(y)
		if err != nil || years <= 0 {
			return fmt.Errorf("invalid DCF_YEARS %q", y)
		}
		cfg.Projection.Years = years
	}
	return nil
}
