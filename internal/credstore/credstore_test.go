package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_TokenMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	token, ok := store.Token()
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestFileStore_SaveAndToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	err := store.Save("abc123")
	require.NoError(t, err)

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_SaveEmptyRejected(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	err := store.Save("")
	assert.Error(t, err)
}

func TestFileStore_TokenTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("abc123\n"), 0600))

	token, ok := NewFileStore(path).Token()
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)
	require.NoError(t, store.Save("abc123"))

	err := store.Clear()
	require.NoError(t, err)

	_, ok := store.Token()
	assert.False(t, ok)

	// Clearing twice is a no-op
	assert.NoError(t, store.Clear())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")

	_, ok := store.Token()
	assert.False(t, ok)

	require.NoError(t, store.Save("tok"))
	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear())
	_, ok = store.Token()
	assert.False(t, ok)
}

func TestMemoryStore_Seeded(t *testing.T) {
	store := NewMemoryStore("seeded")

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "seeded", token)
}
