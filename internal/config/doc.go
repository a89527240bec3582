// Package config handles loading and validation of numclean configuration.
//
// Configuration is read from ~/.config/numclean/config.toml. A missing file
// means defaults; an unreadable or invalid file is an error.
//
// None of the settings change which lines are kept. The filter rule is
// fixed; configuration only covers run history and presentation.
//
// # Key Settings
//
//   - history.enabled: record successful runs (default: true)
//   - history.max_entries: number of runs kept (default: 50)
//   - history.path: history file (default: ~/.numclean/history.json)
//   - ui.theme: summary colors, one of "default", "dracula", "nord", "gruvbox"
//
// # Path Validation
//
// history.path must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
