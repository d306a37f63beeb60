// Package config loads and validates the engine's YAML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/docgrade/docgrade/internal/engine"
	"github.com/docgrade/docgrade/internal/match"
)

var validate = validator.New()

// Config is the full file configuration: matching policy, ledger
// location, server binding, and the optional pricing table.
type Config struct {
	// LedgerDir is where per-source ledger files live.
	LedgerDir string `yaml:"ledger_dir" validate:"required"`

	// ListenAddr is the HTTP API bind address for serve mode.
	ListenAddr string `yaml:"listen_addr" validate:"required,hostname_port"`

	// LogLevel is the zap level name for non-verbose runs.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Match carries the alignment thresholds and blend weights.
	Match match.Options `yaml:"match"`

	// Pricing maps composite model keys to per-1K token rates.
	Pricing map[string]engine.ModelRate `yaml:"pricing"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LedgerDir:  "ledgers",
		ListenAddr: "localhost:8085",
		LogLevel:   "info",
		Match:      match.DefaultOptions(),
	}
}

// Load reads a YAML config file over the defaults and validates the
// result. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags and the matching options.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Match.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
