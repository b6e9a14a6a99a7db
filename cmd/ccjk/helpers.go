package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	"github.com/miounet11/ccjk-sub004/internal/codex"
	"github.com/miounet11/ccjk-sub004/internal/confdoc"
	"github.com/miounet11/ccjk-sub004/internal/i18n"
	"github.com/miounet11/ccjk-sub004/internal/logging"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
	failMark = color.New(color.FgRed).Sprint("✗")
)

func backupDir() string {
	return filepath.Join(ccjkDir, "backups")
}

// msg translates a catalog key using the configured language.
func msg(key string, args ...any) string {
	return i18n.T(st.Language, key, args...)
}

func printOK(key string, args ...any) {
	fmt.Println(okMark, msg(key, args...))
}

func printWarn(key string, args ...any) {
	fmt.Println(warnMark, msg(key, args...))
}

// loadCodex opens the codex config, running the one-time field-rename
// migration first. Migration trouble is a warning, never a blocker.
func loadCodex() (*confdoc.Document, *codex.Manager, error) {
	m := codex.NewManager(codex.DefaultConfigPath())

	wasMigrated := st.CodexMigrated
	if _, warn := m.MigrateOnce(st, guard, backupDir()); warn != nil {
		printWarn("migrate.warn", warn)
	}
	if st.CodexMigrated && !wasMigrated {
		if err := st.Save(ccjkDir); err != nil {
			logging.New("cli").Warn("settings_save_failed", nil, err)
		}
	}

	doc, err := m.Load()
	if err != nil {
		return nil, nil, err
	}
	return doc, m, nil
}

func saveCodex(doc *confdoc.Document, m *codex.Manager) error {
	return m.Save(doc, guard, backupDir(), st.BackupKeep)
}

// recordEvent appends to the local history database. History is best
// effort; a failure only logs.
func recordEvent(category audit.Category, operation, target string, status audit.Status, detail string) {
	store, err := audit.Open(ccjkDir)
	if err != nil {
		logging.New("audit").Warn("history_unavailable", nil, err)
		return
	}
	defer store.Close()

	if _, err := store.Record(category, operation, target, status, detail); err != nil {
		logging.New("audit").Warn("history_write_failed", nil, err)
	}
}
