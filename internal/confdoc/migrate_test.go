package confdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- Detection Tests ---

func TestNeedsMigration(t *testing.T) {
	assert.True(t, NeedsMigration("env_key = \"X\"\n"))
	assert.True(t, NeedsMigration("  env_key = \"X\"\n"))
	assert.False(t, NeedsMigration("auth_env = \"X\"\n"))
	assert.False(t, NeedsMigration("env_keys = \"X\"\n"))
	assert.False(t, NeedsMigration(""))
}

// --- Rewrite Tests ---

func TestMigrateRenamesField(t *testing.T) {
	text := `[providers.acme]
name = "Acme"
env_key = "ACME_KEY"
requires_auth = true
`
	want := `[providers.acme]
name = "Acme"
auth_env = "ACME_KEY"
requires_auth = true
`
	assert.Equal(t, want, Migrate(text))
}

func TestMigratePreservesIndentation(t *testing.T) {
	assert.Equal(t, "    auth_env = \"K\"  # note\n", Migrate("    env_key = \"K\"  # note\n"))
}

func TestMigrateDeletesDuplicate(t *testing.T) {
	// When a section already declares the new field, the legacy line is
	// removed instead of rewritten, so no duplicate key survives.
	text := `[providers.acme]
auth_env = "NEW"
env_key = "OLD"

[providers.beta]
env_key = "BETA"
`
	out := Migrate(text)

	assert.Contains(t, out, "auth_env = \"NEW\"\n")
	assert.Contains(t, out, "auth_env = \"BETA\"\n")
	assert.NotContains(t, out, "env_key")
	assert.NotContains(t, out, "\"OLD\"")
}

func TestMigrateLeavesUnrelatedLinesAlone(t *testing.T) {
	text := `# comment mentioning env_key in prose
[alpha]
x = 1
key = "env_key"
`
	assert.Equal(t, text, Migrate(text))
}

func TestMigrateIdempotent(t *testing.T) {
	text := `[providers.acme]
env_key = "K"
`
	once := Migrate(text)

	assert.False(t, NeedsMigration(once))
	assert.Equal(t, once, Migrate(once))
}
