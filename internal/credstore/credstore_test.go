package credstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.Set("ACME_API_KEY", "s3cret"))

	secret, err := s.Get("ACME_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)

	require.NoError(t, s.Delete("ACME_API_KEY"))
	_, err = s.Get("ACME_API_KEY")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	assert.NoError(t, s.Delete("ACME_API_KEY"))
}

func TestNamesNeverExposeSecrets(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Set("B_KEY", "b"))
	require.NoError(t, s.Set("A_KEY", "a"))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"A_KEY", "B_KEY"}, names)
}

func TestCredentialFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.Set("K", "v"))

	info, err := os.Stat(filepath.Join(dir, credFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
