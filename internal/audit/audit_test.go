package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	id1, err := store.Record(CategoryCodex, "provider_add", "acme", StatusSuccess, "")
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := store.Record(CategoryClaude, "preset_apply", "standard", StatusWarning, "partial")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	events, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "preset_apply", events[0].Operation)
	assert.Equal(t, CategoryClaude, events[0].Category)
	assert.Equal(t, "partial", events[0].Detail)
	assert.Equal(t, "provider_add", events[1].Operation)
}

func TestRecentDefaultLimit(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	events, err := store.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, events)
}
