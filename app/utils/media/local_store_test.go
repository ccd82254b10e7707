package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCopiesIntoDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile_images")
	store := NewLocalStore(dir)

	src := filepath.Join(t.TempDir(), "cat.JPEG")
	require.NoError(t, os.WriteFile(src, []byte("meow"), 0o644))

	saved, err := store.Save(src, "profile_9")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(saved))
	assert.True(t, strings.HasPrefix(filepath.Base(saved), "profile_9_"))
	assert.Equal(t, ".jpeg", filepath.Ext(saved))

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))

	again, err := store.Save(src, "profile_9")
	require.NoError(t, err)
	assert.NotEqual(t, saved, again)
}

func TestSaveDefaultsExtension(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	src := filepath.Join(t.TempDir(), "picture")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	saved, err := store.Save(src, "p")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(saved))
}

func TestSaveRejectsMissingAndDirectories(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Save(filepath.Join(t.TempDir(), "missing.png"), "p")
	require.Error(t, err)

	_, err = store.Save(t.TempDir(), "p")
	require.Error(t, err)
}

func TestRemoveStaysInsideDir(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	outside := filepath.Join(t.TempDir(), "keep.png")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))
	require.NoError(t, store.Remove(outside))
	_, err := os.Stat(outside)
	require.NoError(t, err)

	saved, err := store.Save(outside, "p")
	require.NoError(t, err)
	require.NoError(t, store.Remove(saved))
	_, err = os.Stat(saved)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Remove(saved), "removing twice is fine")
	require.NoError(t, store.Remove(""))
}
