package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStubs(t *testing.T, path string, pathErr error, out string, runErr error) {
	t.Helper()
	origLook, origRun := lookPath, runVersion
	lookPath = func(string) (string, error) { return path, pathErr }
	runVersion = func(context.Context, string) (string, error) { return out, runErr }
	t.Cleanup(func() { lookPath, runVersion = origLook, origRun })
}

func TestCheckBinaryFound(t *testing.T) {
	withStubs(t, "/usr/bin/codex", nil, "codex-cli 1.4.2\n", nil)

	c := CheckBinary(context.Background(), "codex", "codex")
	assert.Equal(t, StatusOK, c.Status)
	assert.Equal(t, "1.4.2", c.Version)
}

func TestCheckBinaryMissing(t *testing.T) {
	withStubs(t, "", errors.New("not found"), "", nil)

	c := CheckBinary(context.Background(), "codex", "codex")
	assert.Equal(t, StatusMissing, c.Status)
	assert.Contains(t, c.Detail, "not found in PATH")
}

func TestCheckBinaryVersionUnrecognized(t *testing.T) {
	withStubs(t, "/usr/bin/claude", nil, "development build\n", nil)

	c := CheckBinary(context.Background(), "claude", "claude")
	assert.Equal(t, StatusWarning, c.Status)
	assert.Contains(t, c.Detail, "development build")
}

func TestCheckCodexConfigStates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	c := CheckCodexConfig(path)
	assert.Equal(t, StatusWarning, c.Status)

	require.NoError(t, os.WriteFile(path, []byte("[providers.a]\nname = \"A\"\nbase_url = \"https://a\"\nauth_env = \"A\"\n"), 0o644))
	c = CheckCodexConfig(path)
	assert.Equal(t, StatusOK, c.Status)
	assert.Equal(t, "managed", c.Detail)

	require.NoError(t, os.WriteFile(path, []byte("env_key = \"K\"\n"), 0o644))
	c = CheckCodexConfig(path)
	assert.Equal(t, StatusWarning, c.Status)
	assert.Contains(t, c.Detail, "migrate")
}
