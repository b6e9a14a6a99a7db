package codex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miounet11/ccjk-sub004/internal/confdoc"
	"github.com/miounet11/ccjk-sub004/internal/fileio"
	"github.com/miounet11/ccjk-sub004/internal/settings"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	return NewManager(filepath.Join(dir, ConfigFileName)), dir
}

func TestLoadMissingFile(t *testing.T) {
	m, _ := newTestManager(t)

	doc, err := m.Load()
	require.NoError(t, err)
	assert.False(t, doc.IsManaged())
	assert.Empty(t, doc.Unmanaged)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	m, dir := newTestManager(t)

	doc := confdoc.Parse("")
	doc.UpsertProvider(confdoc.Provider{
		ID: "acme", Name: "Acme", BaseURL: "https://api.acme.ai/v1",
		WireAPI: confdoc.WireResponses, AuthEnv: "ACME_API_KEY", RequiresAuth: true,
	})
	doc.SetDefaultProvider("acme")

	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, m.Save(doc, fileio.NewBackupGuard(), backupDir, 5))

	loaded, err := m.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Providers, 1)
	assert.Equal(t, "acme", loaded.DefaultProviderRef)

	// Another save round-trips byte for byte.
	first, err := m.ReadText()
	require.NoError(t, err)
	require.NoError(t, m.Save(loaded, fileio.NewBackupGuard(), backupDir, 5))
	second, err := m.ReadText()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMigrateOnceRewritesLegacyField(t *testing.T) {
	m, dir := newTestManager(t)
	text := "[providers.acme]\nname = \"Acme\"\nenv_key = \"ACME_KEY\"\n"
	require.NoError(t, os.WriteFile(m.Path(), []byte(text), 0o644))

	st := settings.Default()
	migrated, warn := m.MigrateOnce(st, fileio.NewBackupGuard(), filepath.Join(dir, "backups"))

	assert.True(t, migrated)
	assert.NoError(t, warn)
	assert.True(t, st.CodexMigrated)

	out, err := m.ReadText()
	require.NoError(t, err)
	assert.Contains(t, out, "auth_env = \"ACME_KEY\"")
	assert.NotContains(t, out, "env_key")

	// The pre-migration content was backed up.
	backups, err := fileio.List(filepath.Join(dir, "backups"), ConfigFileName)
	require.NoError(t, err)
	require.Len(t, backups, 1)
}

func TestMigrateOnceGatedByFlag(t *testing.T) {
	m, dir := newTestManager(t)
	text := "env_key = \"K\"\n"
	require.NoError(t, os.WriteFile(m.Path(), []byte(text), 0o644))

	st := settings.Default()
	st.CodexMigrated = true

	migrated, warn := m.MigrateOnce(st, fileio.NewBackupGuard(), filepath.Join(dir, "backups"))
	assert.False(t, migrated)
	assert.NoError(t, warn)

	out, err := m.ReadText()
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestMigrateOnceCleanFileJustSetsFlag(t *testing.T) {
	m, dir := newTestManager(t)
	require.NoError(t, os.WriteFile(m.Path(), []byte("x = 1\n"), 0o644))

	st := settings.Default()
	migrated, warn := m.MigrateOnce(st, fileio.NewBackupGuard(), filepath.Join(dir, "backups"))

	assert.False(t, migrated)
	assert.NoError(t, warn)
	assert.True(t, st.CodexMigrated)
}
