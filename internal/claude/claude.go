// Package claude edits the claude tool's JSON settings file. The same
// rule as the codex engine applies: keys ccjk does not model are carried
// through untouched.
package claude

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/miounet11/ccjk-sub004/internal/fileio"
	"github.com/miounet11/ccjk-sub004/internal/permission"
)

const (
	SettingsDirName  = ".claude"
	SettingsFileName = "settings.json"
)

// Permissions is the allow/deny rule block in the settings file.
type Permissions struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Settings models the fields ccjk manages. Unknown top-level keys are
// kept verbatim in extra and written back on save.
type Settings struct {
	Model       string            `json:"-"`
	Env         map[string]string `json:"-"`
	Permissions *Permissions      `json:"-"`

	extra map[string]json.RawMessage
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["model"]; ok {
		if err := json.Unmarshal(v, &s.Model); err != nil {
			return err
		}
		delete(raw, "model")
	}
	if v, ok := raw["env"]; ok {
		if err := json.Unmarshal(v, &s.Env); err != nil {
			return err
		}
		delete(raw, "env")
	}
	if v, ok := raw["permissions"]; ok {
		if err := json.Unmarshal(v, &s.Permissions); err != nil {
			return err
		}
		delete(raw, "permissions")
	}
	s.extra = raw
	return nil
}

func (s *Settings) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	for k, v := range s.extra {
		out[k] = v
	}
	if s.Model != "" {
		out["model"] = s.Model
	}
	if len(s.Env) > 0 {
		out["env"] = s.Env
	}
	if s.Permissions != nil {
		out["permissions"] = s.Permissions
	}
	return json.Marshal(out)
}

// ApplyPreset replaces the permission block with the preset's rules.
func (s *Settings) ApplyPreset(p *permission.Preset) {
	s.Permissions = &Permissions{
		Allow: p.AllowRules(),
		Deny:  p.DenyRules(),
	}
}

// SetEnv sets one env entry, creating the map on first use.
func (s *Settings) SetEnv(key, value string) {
	if s.Env == nil {
		s.Env = map[string]string{}
	}
	s.Env[key] = value
}

// Manager reads and writes one settings file.
type Manager struct {
	path string
}

// NewManager returns a manager for the settings file at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// DefaultSettingsPath returns the claude tool's global settings file.
// CLAUDE_HOME overrides the directory, mainly for tests.
func DefaultSettingsPath() string {
	if override := os.Getenv("CLAUDE_HOME"); override != "" {
		return filepath.Join(override, SettingsFileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, SettingsDirName, SettingsFileName)
}

// Load reads the settings file. A missing file yields empty settings.
func (m *Manager) Load() (*Settings, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	s := &Settings{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Save backs up the current file once per guard and replaces it
// atomically.
func (m *Manager) Save(s *Settings, guard *fileio.BackupGuard, backupDir string) error {
	if _, err := guard.Backup(m.path, backupDir); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return fileio.WriteAtomic(m.path, append(data, '\n'), 0o644)
}
