package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// HistoryConfig holds run history settings
type HistoryConfig struct {
	Enabled    bool   `toml:"enabled" json:"enabled"`
	MaxEntries int    `toml:"max_entries" json:"max_entries"`
	Path       string `toml:"path,omitempty" json:"path,omitempty"` // empty = ~/.numclean/history.json
}

// UIConfig holds presentation settings
type UIConfig struct {
	Theme string `toml:"theme" json:"theme"`
}

// Config holds the numclean configuration
type Config struct {
	History HistoryConfig `toml:"history" json:"history"`
	UI      UIConfig      `toml:"ui" json:"ui"`
}

// Defaults for unset values
const (
	DefaultTheme      = "default"
	DefaultMaxEntries = 50
)

// Default returns the default configuration
func Default() Config {
	return Config{
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: DefaultMaxEntries,
		},
		UI: UIConfig{
			Theme: DefaultTheme,
		},
	}
}

type ctxKey struct{}

// WithConfig attaches cfg to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, or Default() if none is.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "numclean", "config.toml"), nil
}

// Load reads config from ~/.config/numclean/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path with the same rules as Load.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML content on top of Default() and validates the result.
func Parse(content string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}

	if cfg.History.Path != "" {
		expanded, err := expandPath(cfg.History.Path)
		if err != nil {
			return Default(), fmt.Errorf("expand history.path: %w", err)
		}
		cfg.History.Path = expanded
	}

	// Use defaults for empty values
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = DefaultTheme
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = DefaultMaxEntries
	}

	return cfg, nil
}

const defaultConfig = `# numclean configuration
#
# These settings never change which lines are kept: blank lines and lines
# containing a letter or '+' are always dropped.

[history]
# Record each successful run so "numclean history" can list it
enabled = true

# Number of runs to remember (oldest are evicted first)
max_entries = 50

# Where the history is stored
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# path = "~/.numclean/history.json"

[ui]
# Colors used for the run summary on stderr
# Available: "default", "dracula", "nord", "gruvbox"
theme = "default"
`

// DefaultConfig returns the commented default config file content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/numclean/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitFile(path, force)
}

// InitFile writes the default config to path.
func InitFile(path string, force bool) error {
	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
