package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/starprep/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagStore_MissingFileReadsAsNeverSet(t *testing.T) {
	t.Parallel()

	store := fs.NewFlagStore(filepath.Join(t.TempDir(), "flags.json"))

	value, ok := store.Flag("tour_completed")

	assert.False(t, value)
	assert.False(t, ok)
}

func TestFlagStore_SetGetRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "flags.json")
	store := fs.NewFlagStore(path)

	require.NoError(t, store.SetFlag("tour_completed", true))

	value, ok := store.Flag("tour_completed")
	assert.True(t, value)
	assert.True(t, ok)

	// A fresh store over the same file sees the persisted value.
	value, ok = fs.NewFlagStore(path).Flag("tour_completed")
	assert.True(t, value)
	assert.True(t, ok)
}

func TestFlagStore_ExplicitFalseIsStillSet(t *testing.T) {
	t.Parallel()

	store := fs.NewFlagStore(filepath.Join(t.TempDir(), "flags.json"))

	require.NoError(t, store.SetFlag("tour_completed", false))

	value, ok := store.Flag("tour_completed")
	assert.False(t, value)
	assert.True(t, ok, "false is distinct from never set")
}

func TestFlagStore_RemoveFlag(t *testing.T) {
	t.Parallel()

	store := fs.NewFlagStore(filepath.Join(t.TempDir(), "flags.json"))

	require.NoError(t, store.SetFlag("tour_completed", true))
	require.NoError(t, store.RemoveFlag("tour_completed"))

	_, ok := store.Flag("tour_completed")
	assert.False(t, ok)

	require.NoError(t, store.RemoveFlag("never_existed"), "removing an absent key is fine")
}
