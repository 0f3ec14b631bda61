// Package config provides configuration types, defaults, and persistence
// for polish.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/log"
	"github.com/zjrosen/polish/internal/tracing"
)

// Config holds all configuration options for polish.
type Config struct {
	// DebounceMs is the quiet period in milliseconds before keystroke
	// edits become an undo checkpoint. Zero or absent means every edit
	// commits immediately.
	DebounceMs int `mapstructure:"debounce_ms"`

	Cleaner CleanerConfig   `mapstructure:"cleaner"`
	Options cleaner.Options `mapstructure:"options"`
	Archive ArchiveConfig   `mapstructure:"archive"`
	Tracing tracing.Config  `mapstructure:"tracing"`
	UI      UIConfig        `mapstructure:"ui"`
}

// CleanerConfig configures the remote cleaning service.
type CleanerConfig struct {
	// Model is the Anthropic model used for cleaning.
	Model string `mapstructure:"model"`
	// MaxTokens caps the response size.
	MaxTokens int `mapstructure:"max_tokens"`
	// BaseURL overrides the API endpoint (testing, proxies).
	BaseURL string `mapstructure:"base_url"`
	// CacheTTLMinutes is how long cleaned results are memoized.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
}

// ArchiveConfig configures the sqlite archive of completed cleanings.
type ArchiveConfig struct {
	// Enabled turns the archive on.
	Enabled bool `mapstructure:"enabled"`
	// Path is the database file. Empty derives a default under the
	// user config directory.
	Path string `mapstructure:"path"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	// ShowStatusBar shows the key hint bar at the bottom.
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	// WrapWidth wraps output pane text at this column; 0 uses pane width.
	WrapWidth int `mapstructure:"wrap_width"`
}

// DefaultDebounceMs groups keystroke-level edits into one checkpoint per
// typing pause.
const DefaultDebounceMs = 800

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		DebounceMs: DefaultDebounceMs,
		Cleaner: CleanerConfig{
			Model:           "claude-3-5-haiku-latest",
			MaxTokens:       4096,
			CacheTTLMinutes: 10,
		},
		Options: cleaner.DefaultOptions(),
		Archive: ArchiveConfig{
			Enabled: true,
		},
		Tracing: tracing.DefaultConfig(),
		UI: UIConfig{
			ShowStatusBar: true,
		},
	}
}

// Validate checks config invariants that would otherwise surface as
// confusing behavior at runtime.
func Validate(cfg Config) error {
	if cfg.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must be zero or positive, got %d", cfg.DebounceMs)
	}
	if cfg.Cleaner.MaxTokens < 0 {
		return fmt.Errorf("cleaner.max_tokens must be zero or positive, got %d", cfg.Cleaner.MaxTokens)
	}
	if err := validateTracing(cfg.Tracing); err != nil {
		return err
	}
	return nil
}

func validateTracing(cfg tracing.Config) error {
	switch cfg.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be one of none, file, stdout, otlp; got %q", cfg.Exporter)
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be within [0, 1], got %v", cfg.SampleRate)
	}
	return nil
}

// DefaultArchivePath derives the archive database location under the user
// config directory.
func DefaultArchivePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".polish/archive.db"
	}
	return filepath.Join(home, ".config", "polish", "archive.db")
}

// DefaultTracesFilePath derives the trace output location under the user
// config directory.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".polish/traces/traces.jsonl"
	}
	return filepath.Join(home, ".config", "polish", "traces", "traces.jsonl")
}

// DefaultConfigTemplate returns the default config as a YAML string with
// comments.
func DefaultConfigTemplate() string {
	return `# Polish Configuration

# Quiet period (ms) before keystroke edits become an undo checkpoint.
# 0 commits every edit immediately.
debounce_ms: 800

# Remote cleaning service
cleaner:
  model: claude-3-5-haiku-latest
  max_tokens: 4096
  cache_ttl_minutes: 10   # Memoize results for identical text + options
  # base_url: https://proxy.internal/anthropic

# Default cleaning options (toggle at runtime with number keys)
options:
  smart_quotes: true      # Curly quotes -> straight quotes
  dashes: true            # Em/en dashes -> hyphens
  whitespace: true        # Collapse repeated spaces, trim trailing
  strip_markdown: false   # Remove markdown syntax
  fix_grammar: false      # Correct grammar and punctuation

# Archive of completed cleanings (not undo history)
archive:
  enabled: true
  # path: ~/.config/polish/archive.db

# UI settings
ui:
  show_status_bar: true
  # wrap_width: 0         # 0 wraps at pane width

# Tracing of cleaning requests
# tracing:
#   enabled: true
#   exporter: file
#   file_path: ~/.config/polish/traces/traces.jsonl
#
# Example: send traces to a collector via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
