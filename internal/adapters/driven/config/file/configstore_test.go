package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("pipeline.workers", 8))
	require.NoError(t, store.Set("paths.intake_dir", "/srv/intake"))
	require.NoError(t, store.Set("pipeline.verbose", true))

	assert.Equal(t, 8, store.GetInt("pipeline.workers"))
	assert.Equal(t, "/srv/intake", store.GetString("paths.intake_dir"))
	assert.True(t, store.GetBool("pipeline.verbose"))
}

func TestConfigStore_Get_Missing(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_Get_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "text"))

	assert.Zero(t, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("pipeline.workers", 6))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 6, second.GetInt("pipeline.workers"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	raw := "[pipeline]\nworkers = 4\n\n[paths]\nintake_dir = \"/in\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, store.GetInt("pipeline.workers"))
	assert.Equal(t, "/in", store.GetString("paths.intake_dir"))
}
