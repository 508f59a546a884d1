package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.HistoryLimitOrDefault(); got != 50 {
		t.Errorf("history limit = %d", got)
	}
	if got := cfg.BackupRetentionOrDefault(); got != 5 {
		t.Errorf("backup retention = %d", got)
	}
	if got := cfg.ScrollbackLimitOrDefault(); got != 1000 {
		t.Errorf("scrollback limit = %d", got)
	}
	if got := cfg.TabWidthOrDefault(); got != 4 {
		t.Errorf("tab width = %d", got)
	}
	if got := cfg.UI.SyntaxThemeOrDefault(); got != "github-dark" {
		t.Errorf("syntax theme = %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
history_limit = 10
tab_width = 8
log_level = "debug"

[ui]
syntax_theme = "monokai"

[terminal]
shell = "/bin/bash"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HistoryLimit != 10 || cfg.TabWidth != 8 {
		t.Errorf("numbers: %+v", cfg)
	}
	if cfg.UI.SyntaxTheme != "monokai" {
		t.Errorf("theme = %q", cfg.UI.SyntaxTheme)
	}
	if cfg.Terminal.Shell != "/bin/bash" {
		t.Errorf("shell = %q", cfg.Terminal.Shell)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("history_limit = =\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := &Config{HistoryLimit: -1, TabWidth: 99, LogLevel: "loud"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"history_limit", "tab_width", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CAFFEE_SHELL", "/usr/bin/fish")
	t.Setenv("CAFFEE_LOG_LEVEL", "info")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Terminal.Shell != "/usr/bin/fish" {
		t.Errorf("shell = %q", cfg.Terminal.Shell)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestValue(t *testing.T) {
	cfg := &Config{TabWidth: 2}
	if v, ok := cfg.Value("tab_width"); !ok || v != "2" {
		t.Errorf("tab_width = %q, %v", v, ok)
	}
	if v, ok := cfg.Value("ui.syntax_theme"); !ok || v != "github-dark" {
		t.Errorf("ui.syntax_theme = %q, %v", v, ok)
	}
	if _, ok := cfg.Value("no_such_key"); ok {
		t.Error("unknown key reported ok")
	}
}
