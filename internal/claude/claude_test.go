package claude

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miounet11/ccjk-sub004/internal/fileio"
	"github.com/miounet11/ccjk-sub004/internal/permission"
)

func TestLoadMissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), SettingsFileName))

	s, err := m.Load()
	require.NoError(t, err)
	assert.Empty(t, s.Model)
	assert.Nil(t, s.Permissions)
}

func TestUnknownKeysSurviveSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	original := `{
  "model": "old-model",
  "statusLine": {"type": "command", "command": "starship"},
  "hooks": {"PreToolUse": []}
}`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	m := NewManager(path)
	s, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "old-model", s.Model)

	s.Model = "new-model"
	require.NoError(t, m.Save(s, fileio.NewBackupGuard(), filepath.Join(dir, "backups")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "statusLine")
	assert.Contains(t, raw, "hooks")
	assert.JSONEq(t, `"new-model"`, string(raw["model"]))
}

func TestApplyPreset(t *testing.T) {
	s := &Settings{}
	s.ApplyPreset(permission.Find("permissive"))

	require.NotNil(t, s.Permissions)
	assert.NotEmpty(t, s.Permissions.Allow)
	assert.Contains(t, s.Permissions.Deny, "Edit(**/.env)")
}

func TestSaveCreatesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"model":"m"}`), 0o644))

	m := NewManager(path)
	s, err := m.Load()
	require.NoError(t, err)

	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, m.Save(s, fileio.NewBackupGuard(), backupDir))

	backups, err := fileio.List(backupDir, SettingsFileName)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestSetEnv(t *testing.T) {
	s := &Settings{}
	s.SetEnv("HTTP_PROXY", "http://localhost:7890")

	assert.Equal(t, "http://localhost:7890", s.Env["HTTP_PROXY"])
}
