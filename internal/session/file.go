package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/caffee/internal/syntax"
)

// ErrNotText marks a file whose content is not valid UTF-8. Callers may
// fall back to an empty session bound to the same path.
var ErrNotText = errors.New("not valid UTF-8")

// ---------------------------------------------------------------------------
// File I/O
// ---------------------------------------------------------------------------

// loadLines reads path into lines. A missing file yields one empty line.
// Content must be valid UTF-8. Exactly one trailing newline is stripped so
// save and load round-trip without growing the file.
func loadLines(path string) ([]string, time.Time, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return []string{""}, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, time.Time{}, fmt.Errorf("%s: %w", path, ErrNotText)
	}

	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n"), info.ModTime(), nil
}

// Save writes the buffer to the session path atomically: content goes to a
// temp sibling which is then renamed over the target, so a crash mid-write
// never leaves a truncated file. A timestamped backup of the previous
// content is taken first; backup failure is logged but does not block the
// save. Returns an error when the session has no path.
func (s *Session) Save() error {
	if s.Path == "" {
		return fmt.Errorf("no file name")
	}

	if err := s.backup(); err != nil {
		log.Warn().Err(err).Str("path", s.Path).Msg("backup failed")
	}

	content := strings.Join(s.Ed.Buffer().Lines(), "\n") + "\n"

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename over %s: %w", s.Path, err)
	}

	if info, err := os.Stat(s.Path); err == nil {
		s.mtime = info.ModTime()
	}
	s.resetHistory()
	return nil
}

// SaveAs binds the session to a new path and saves. Syntax rules re-resolve
// for the new name.
func (s *Session) SaveAs(path string) error {
	s.Path = path
	s.Ed.Rules = syntax.Resolve(path)
	return s.Save()
}

// backup copies the current on-disk content into the backup directory under
// a timestamped name, then prunes old backups past the retention count.
func (s *Session) backup() error {
	if s.BackupDir == "" || s.BackupRetention <= 0 {
		return nil
	}
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil // nothing to back up
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BackupDir, 0750); err != nil {
		return err
	}
	base := filepath.Base(s.Path)
	name := fmt.Sprintf("%s.%s", base, time.Now().Format("20060102-150405.000000000"))
	if err := os.WriteFile(filepath.Join(s.BackupDir, name), data, 0600); err != nil {
		return err
	}

	return pruneBackups(s.BackupDir, base, s.BackupRetention)
}

// pruneBackups removes the oldest backups of base beyond keep.
func pruneBackups(dir, base string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), base+".") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}
	// Timestamped suffixes sort lexicographically by age.
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			log.Warn().Err(err).Str("backup", name).Msg("failed to prune backup")
		}
	}
	return nil
}

// ExternallyModified reports whether the file changed on disk since the
// last load or save. Scratch buffers and deleted files report false.
func (s *Session) ExternallyModified() bool {
	if s.Path == "" || s.mtime.IsZero() {
		return false
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return false
	}
	return !info.ModTime().Equal(s.mtime)
}
