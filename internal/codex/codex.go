// Package codex wires the document engine to the codex tool's config
// file: read text, migrate once, parse, mutate, render, back up, write.
package codex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/miounet11/ccjk-sub004/internal/confdoc"
	"github.com/miounet11/ccjk-sub004/internal/fileio"
	"github.com/miounet11/ccjk-sub004/internal/logging"
	"github.com/miounet11/ccjk-sub004/internal/settings"
)

const (
	ConfigDirName  = ".codex"
	ConfigFileName = "config.toml"
)

// Manager owns one config file path.
type Manager struct {
	path string
	log  *logging.Logger
}

// NewManager returns a manager for the config file at path.
func NewManager(path string) *Manager {
	return &Manager{
		path: path,
		log:  logging.New("codex").WithTool("codex"),
	}
}

// DefaultConfigPath returns the codex tool's global config file.
// CODEX_HOME overrides the directory, mainly for tests.
func DefaultConfigPath() string {
	if override := os.Getenv("CODEX_HOME"); override != "" {
		return filepath.Join(override, ConfigFileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ConfigDirName, ConfigFileName)
}

// Path returns the managed config file path.
func (m *Manager) Path() string {
	return m.path
}

// ReadText returns the raw config text. A missing file reads as empty.
func (m *Manager) ReadText() (string, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}
	return string(data), nil
}

// Load reads and parses the config. Parse never fails; a malformed file
// comes back with IsManaged() == false and its content preserved.
func (m *Manager) Load() (*confdoc.Document, error) {
	text, err := m.ReadText()
	if err != nil {
		return nil, err
	}
	return confdoc.Parse(text), nil
}

// Save renders the document and replaces the config file, backing the
// previous version up once per guard and pruning old backups.
func (m *Manager) Save(doc *confdoc.Document, guard *fileio.BackupGuard, backupDir string, keep int) error {
	if _, err := guard.Backup(m.path, backupDir); err != nil {
		return err
	}

	if err := fileio.WriteAtomic(m.path, []byte(doc.Render()), 0o644); err != nil {
		return err
	}

	if err := fileio.Prune(backupDir, ConfigFileName, keep); err != nil {
		m.log.Warn("backup_prune_failed", nil, err)
	}
	return nil
}

// MigrateOnce runs the legacy field-rename migration at most once per
// document lifetime, gated by the persisted flag in st. The caller saves
// st afterwards. Failures are reported as a warning and leave both the
// file and the flag untouched; the larger operation continues with
// unmigrated content.
func (m *Manager) MigrateOnce(st *settings.Settings, guard *fileio.BackupGuard, backupDir string) (migrated bool, warn error) {
	if st.CodexMigrated {
		return false, nil
	}

	text, err := m.ReadText()
	if err != nil {
		m.log.Warn("migration_skipped", nil, err)
		return false, fmt.Errorf("migration skipped: %w", err)
	}

	if !confdoc.NeedsMigration(text) {
		st.CodexMigrated = true
		return false, nil
	}

	if _, err := guard.Backup(m.path, backupDir); err != nil {
		m.log.Warn("migration_skipped", nil, err)
		return false, fmt.Errorf("migration skipped: %w", err)
	}

	if err := fileio.WriteAtomic(m.path, []byte(confdoc.Migrate(text)), 0o644); err != nil {
		m.log.Warn("migration_write_failed", nil, err)
		return false, fmt.Errorf("migration failed: %w", err)
	}

	st.CodexMigrated = true
	m.log.Info("migration_applied", map[string]any{"path": m.path})
	return true, nil
}
