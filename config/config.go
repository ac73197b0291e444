// Package config resolves where the local agent logs live and how reports
// are priced. Values layer in order: built-in defaults, an optional YAML
// file, then environment variables. Command-line flags override all three.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the effective settings for one CLI invocation.
type Config struct {
	// ClaudeDirs are the Claude Code data directories to scan. Each holds a
	// projects/ tree of session JSONL files.
	ClaudeDirs []string `yaml:"claude_dirs"`

	// CodexDir is the Codex home directory, holding sessions/ rollouts.
	CodexDir string `yaml:"codex_dir"`

	// PricingFile points at a LiteLLM-format JSON file to use instead of
	// the embedded dataset.
	PricingFile string `yaml:"pricing_file"`

	CostMode    string `yaml:"cost_mode"`
	Timezone    string `yaml:"timezone"`
	LogLevel    string `yaml:"log_level"`
	StartOfWeek string `yaml:"start_of_week"`

	// ProviderPrefixes override the provider prefixes tried during pricing
	// lookup. Empty keeps the built-in list.
	ProviderPrefixes []string `yaml:"provider_prefixes"`
}

// Default returns the built-in settings: both conventional Claude data
// directories, the conventional Codex home, and auto cost mode.
func Default() Config {
	cfg := Config{
		CostMode:    "auto",
		LogLevel:    "info",
		StartOfWeek: "sunday",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.ClaudeDirs = []string{
			filepath.Join(home, ".config", "claude"),
			filepath.Join(home, ".claude"),
		}
		cfg.CodexDir = filepath.Join(home, ".codex")
	}
	return cfg
}

// DefaultPath is where Load looks for a config file when neither the
// --config flag nor CCUSAGE_CONFIG names one.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "better-ccusage", "config.yaml")
}

// Load builds the effective configuration. path comes from the --config
// flag; empty falls back to CCUSAGE_CONFIG, then DefaultPath. A missing
// file is fine, a malformed one is an error.
func Load(path string) (Config, error) {
	// Pull in a local .env first so its variables join the override pass.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("CCUSAGE_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No file at the conventional location, defaults stand.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CLAUDE_CONFIG_DIR"); val != "" {
		cfg.ClaudeDirs = splitDirs(val)
	}
	if val := os.Getenv("CODEX_HOME"); val != "" {
		cfg.CodexDir = val
	}
	if val := os.Getenv("CCUSAGE_PRICING_FILE"); val != "" {
		cfg.PricingFile = val
	}
	if val := os.Getenv("CCUSAGE_COST_MODE"); val != "" {
		cfg.CostMode = val
	}
	if val := os.Getenv("CCUSAGE_TIMEZONE"); val != "" {
		cfg.Timezone = val
	}
	if val := os.Getenv("CCUSAGE_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
}

// splitDirs parses a comma-separated directory list, dropping empty parts.
func splitDirs(s string) []string {
	parts := strings.Split(s, ",")
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

// Location resolves the configured timezone. Empty means the system's
// local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
