// Package fileio owns the file side of a config edit: atomic writes and
// timestamped backups. The document engine itself never touches disk.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WriteAtomic replaces path with data in one rename, so a crash mid-write
// cannot leave a half-written config behind.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// BackupGuard makes at most one backup per source file within a single
// operation, however many writes that operation performs. Create one per
// command invocation and pass it down the call chain; there is no
// package-level state.
type BackupGuard struct {
	done map[string]string
}

// NewBackupGuard returns an empty guard.
func NewBackupGuard() *BackupGuard {
	return &BackupGuard{done: make(map[string]string)}
}

// Backup copies path into backupDir under a timestamped name and returns
// the backup path. Repeat calls for the same source return the first
// backup. A missing source is not an error; the returned path is empty.
func (g *BackupGuard) Backup(path, backupDir string) (string, error) {
	if prev, ok := g.done[path]; ok {
		return prev, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		g.done[path] = ""
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s.%s.bak",
		filepath.Base(path),
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8])
	dest := filepath.Join(backupDir, name)

	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	g.done[path] = dest
	return dest, nil
}

// List returns the backups of a given source file, newest first.
func List(backupDir, sourceName string) ([]string, error) {
	entries, err := os.ReadDir(backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), sourceName+".") && strings.HasSuffix(e.Name(), ".bak") {
			names = append(names, e.Name())
		}
	}
	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(backupDir, n)
	}
	return paths, nil
}

// Prune deletes all but the newest keep backups of a source file.
func Prune(backupDir, sourceName string, keep int) error {
	if keep < 1 {
		keep = 1
	}
	backups, err := List(backupDir, sourceName)
	if err != nil {
		return err
	}
	for _, path := range backups[min(keep, len(backups)):] {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
