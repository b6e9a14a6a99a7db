// Package settings persists ccjk's own preferences and bookkeeping,
// separate from the tool configs it manages.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

const (
	SettingsFileName = "settings.json"
	SettingsDirName  = ".ccjk"
)

// Settings holds application state that survives between invocations.
type Settings struct {
	// Language selects the message catalog ("en" or "zh").
	Language string `json:"language,omitempty"`

	// CodexMigrated records that the one-time codex field-rename
	// migration already ran, so it is attempted at most once even when
	// detection would still trigger.
	CodexMigrated bool `json:"codexMigrated,omitempty"`

	// BackupKeep is how many timestamped config backups to retain per
	// file.
	BackupKeep int `json:"backupKeep,omitempty"`
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		Language:   "en",
		BackupKeep: 10,
	}
}

// Load reads settings from dir, falling back to defaults when the file is
// missing or unreadable. Environment variables override the file.
func Load(dir string) *Settings {
	s := Default()

	if data, err := os.ReadFile(filepath.Join(dir, SettingsFileName)); err == nil {
		json.Unmarshal(data, s)
	}

	if lang := os.Getenv("CCJK_LANG"); lang != "" {
		s.Language = lang
	}
	if keep := os.Getenv("CCJK_BACKUP_KEEP"); keep != "" {
		if n, err := strconv.Atoi(keep); err == nil && n > 0 {
			s.BackupKeep = n
		}
	}

	return s
}

// Save writes the settings to dir, creating it if needed.
func (s *Settings) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, SettingsFileName), data, 0o644)
}

// Dir returns the global settings directory.
func Dir() string {
	if override := os.Getenv("CCJK_HOME"); override != "" {
		return override
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, SettingsDirName)
}
