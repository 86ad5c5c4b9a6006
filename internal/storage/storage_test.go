package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Put([]byte("resume bytes"), "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	data, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("resume bytes"), data)

	require.NoError(t, store.Delete(key))
	_, err = store.Get(key)
	assert.Error(t, err)
}

func TestFileStoreKeysAreUnique(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	k1, err := store.Put([]byte("a"), "txt")
	require.NoError(t, err)
	k2, err := store.Put([]byte("b"), "txt")
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestFileStoreGetRejectsPathTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// only the basename of the key is honored
	_, err = store.Get("../../etc/passwd")
	assert.Error(t, err)
}
