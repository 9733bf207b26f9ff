package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	return store, path
}

func TestFileStore_SetGetDelete(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Set("key", payload{Name: "x", Count: 2}))

	var got payload
	found, err := store.Get("key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "x", Count: 2}, got)

	require.NoError(t, store.Delete("key"))
	found, err = store.Get("key", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_MissingKey(t *testing.T) {
	store, _ := newStore(t)

	var got string
	found, err := store.Get("absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Set("token", "abc123"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	var got string
	found, err := reopened.Get("token", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc123", got)
}

func TestFileStore_DeletePersists(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Set("token", "abc123"))
	require.NoError(t, store.Delete("token"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	var got string
	found, err := reopened.Get("token", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	var got string
	found, err := store.Get("anything", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", 1))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_DeleteMissingKeyIsNoop(t *testing.T) {
	store, _ := newStore(t)

	assert.NoError(t, store.Delete("never-set"))
}
