package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/caffee/internal/buffer"
	"github.com/xonecas/caffee/internal/config"
	"github.com/xonecas/caffee/internal/plugin"
	"github.com/xonecas/caffee/internal/session"
	"github.com/xonecas/caffee/internal/store"
	"github.com/xonecas/caffee/internal/term"
	"github.com/xonecas/caffee/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "caffee: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return err
	}

	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Logs go to a file; stdout and stderr belong to the terminal UI.
	logFile, err := os.OpenFile(filepath.Join(dataDir, "caffee.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer logFile.Close()
	level, err := zerolog.ParseLevel(cfg.LogLevelOrDefault())
	if err != nil {
		level = zerolog.WarnLevel
	}
	log.Logger = zerolog.New(logFile).Level(level).With().Timestamp().Logger()

	st, err := store.Open(filepath.Join(dataDir, "state.db"))
	if err != nil {
		// The editor works without persistence; log and carry on.
		log.Warn().Err(err).Msg("state store unavailable")
	}
	defer st.Close()

	sessions, warn, err := openSessions(os.Args[1:], cfg, st, dataDir)
	if err != nil {
		return err
	}

	panel := term.NewPanel(cfg.ScrollbackLimitOrDefault())
	defer panel.Close()

	plugins := plugin.NewRegistry()
	plugin.RegisterBuiltins(plugins)

	p := tea.NewProgram(tui.New(tui.Options{
		Config:        cfg,
		Store:         st,
		Plugins:       plugins,
		Sessions:      sessions,
		Panel:         panel,
		Runner:        term.NewRunner(""),
		StartupStatus: warn,
	}))
	_, err = p.Run()
	return err
}

// openSessions opens one session per named file, restoring the last cursor
// position for files seen before. With no arguments it opens a scratch
// session. Non-text files open empty with a warning instead of failing.
func openSessions(paths []string, cfg *config.Config, st *store.Store, dataDir string) ([]*session.Session, string, error) {
	backupDir := filepath.Join(dataDir, "backups")
	histLimit := cfg.HistoryLimitOrDefault()
	retention := cfg.BackupRetentionOrDefault()
	var warn string

	if len(paths) == 0 {
		s := session.New(histLimit)
		s.BackupDir = backupDir
		s.BackupRetention = retention
		return []*session.Session{s}, "", nil
	}

	sessions := make([]*session.Session, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, "", err
		}
		s, err := session.Open(abs, histLimit)
		if errors.Is(err, session.ErrNotText) {
			log.Warn().Str("path", abs).Msg("not a text file, opening empty")
			warn = path + ": not valid UTF-8, opened empty"
			s = session.New(histLimit)
			s.Path = abs
		} else if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", path, err)
		}
		s.BackupDir = backupDir
		s.BackupRetention = retention
		if line, col, ok := st.Cursor(abs); ok {
			s.Ed.MoveTo(buffer.Pos{Line: line, Col: col})
		}
		sessions = append(sessions, s)
	}
	return sessions, warn, nil
}
