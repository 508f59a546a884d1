// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	// HistoryLimit caps the number of undo snapshots per session.
	HistoryLimit int `toml:"history_limit"`
	// BackupRetention is how many timestamped backups to keep per file.
	BackupRetention int `toml:"backup_retention"`
	// ScrollbackLimit caps the terminal panel scrollback in lines.
	ScrollbackLimit int `toml:"scrollback_limit"`
	// TabWidth is the rendered width of a tab character in columns.
	TabWidth int    `toml:"tab_width"`
	LogLevel string `toml:"log_level"`

	UI       UIConfig       `toml:"ui"`
	Terminal TerminalConfig `toml:"terminal"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme name. Token colors and UI chrome
	// colors are both derived from it via highlight.ThemePalette.
	SyntaxTheme string `toml:"syntax_theme"`
}

// TerminalConfig holds terminal panel settings.
type TerminalConfig struct {
	// Shell is the program spawned on the pty. Empty means $SHELL,
	// falling back to /bin/sh.
	Shell string `toml:"shell"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "github-dark" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return "github-dark"
	}
	return u.SyntaxTheme
}

// ShellOrDefault returns the configured shell, $SHELL, or /bin/sh.
func (t TerminalConfig) ShellOrDefault() string {
	if t.Shell != "" {
		return t.Shell
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// HistoryLimitOrDefault returns the configured undo cap or 50 if unset.
func (c *Config) HistoryLimitOrDefault() int {
	if c.HistoryLimit <= 0 {
		return 50
	}
	return c.HistoryLimit
}

// BackupRetentionOrDefault returns the configured retention or 5 if unset.
func (c *Config) BackupRetentionOrDefault() int {
	if c.BackupRetention <= 0 {
		return 5
	}
	return c.BackupRetention
}

// ScrollbackLimitOrDefault returns the configured scrollback cap or 1000 if unset.
func (c *Config) ScrollbackLimitOrDefault() int {
	if c.ScrollbackLimit <= 0 {
		return 1000
	}
	return c.ScrollbackLimit
}

// TabWidthOrDefault returns the configured tab width or 4 if unset.
func (c *Config) TabWidthOrDefault() int {
	if c.TabWidth <= 0 {
		return 4
	}
	return c.TabWidth
}

// LogLevelOrDefault returns the configured log level or "warn" if unset.
func (c *Config) LogLevelOrDefault() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. A missing file is not an error; defaults apply. A file that
// exists but does not parse is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history_limit=%d must not be negative", c.HistoryLimit))
	}
	if c.BackupRetention < 0 {
		errs = append(errs, fmt.Errorf("backup_retention=%d must not be negative", c.BackupRetention))
	}
	if c.ScrollbackLimit < 0 {
		errs = append(errs, fmt.Errorf("scrollback_limit=%d must not be negative", c.ScrollbackLimit))
	}
	if c.TabWidth < 0 || c.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("tab_width=%d must be between 0 and 16", c.TabWidth))
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level=%q must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"CAFFEE_SHELL", func(v string) {
			if v != "" {
				cfg.Terminal.Shell = v
			}
		}},
		{"CAFFEE_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.LogLevel = v
			}
		}},
		{"CAFFEE_SYNTAX_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// Value returns the effective value of a configuration key by its TOML name.
// This is the read surface exposed to plugin callbacks.
func (c *Config) Value(key string) (string, bool) {
	switch key {
	case "history_limit":
		return strconv.Itoa(c.HistoryLimitOrDefault()), true
	case "backup_retention":
		return strconv.Itoa(c.BackupRetentionOrDefault()), true
	case "scrollback_limit":
		return strconv.Itoa(c.ScrollbackLimitOrDefault()), true
	case "tab_width":
		return strconv.Itoa(c.TabWidthOrDefault()), true
	case "log_level":
		return c.LogLevelOrDefault(), true
	case "ui.syntax_theme":
		return c.UI.SyntaxThemeOrDefault(), true
	case "terminal.shell":
		return c.Terminal.ShellOrDefault(), true
	}
	return "", false
}

// DataDir returns the path to the data directory (~/.config/caffee).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "caffee"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns the path to the config file inside the data directory.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
