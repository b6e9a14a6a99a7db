package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPreset(t *testing.T) {
	require.NotNil(t, Find("standard"))
	assert.Nil(t, Find("imaginary"))
}

func TestCheckBashSpecificBeatsCatchAll(t *testing.T) {
	p := Find("standard")

	assert.Equal(t, PermissionAllow, p.CheckBash("git status"))
	assert.Equal(t, PermissionAllow, p.CheckBash("go test ./..."))
	assert.Equal(t, PermissionAsk, p.CheckBash("curl https://example.com"))
}

func TestCheckBashLongestPatternWins(t *testing.T) {
	p := Find("standard")

	// "rm -rf *" is more specific than the "*" catch-all.
	assert.Equal(t, PermissionDeny, p.CheckBash("rm -rf /tmp/x"))
}

func TestCheckPath(t *testing.T) {
	p := Find("standard")

	assert.Equal(t, PermissionDeny, p.CheckPath("project/.env"))
	assert.Equal(t, PermissionAsk, p.CheckPath(".git/config"))
	assert.Equal(t, PermissionAllow, p.CheckPath("src/main.go"))
}

func TestSafePresetAsksByDefault(t *testing.T) {
	p := Find("safe")

	assert.Equal(t, PermissionAllow, p.CheckBash("git status --short"))
	assert.Equal(t, PermissionAsk, p.CheckBash("make install"))
	assert.Equal(t, PermissionAsk, p.CheckPath("src/main.go"))
}

func TestRuleListsAreSortedAndStable(t *testing.T) {
	p := Find("permissive")

	allow := p.AllowRules()
	require.NotEmpty(t, allow)
	assert.Equal(t, allow, Find("permissive").AllowRules())

	deny := p.DenyRules()
	assert.Contains(t, deny, "Edit(**/.env)")
}
