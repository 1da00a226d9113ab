package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoad(t *testing.T) {
	t.Run("missing file returns ErrNotFound", func(t *testing.T) {
		s := NewFileStore(t.TempDir(), "key.properties")
		_, err := s.Load()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing directory returns ErrNotFound", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "nope", "deeper"), "key.properties")
		_, err := s.Load()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty file returns ErrEmpty", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "key.properties"), nil, 0600))

		_, err := NewFileStore(dir, "key.properties").Load()
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("directory in place of file returns ReadError", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "key.properties", "x"), 0700))

		_, err := NewFileStore(dir, "key.properties").Load()
		var readErr *ReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, filepath.Join(dir, "key.properties"), readErr.Location)
	})

	t.Run("read-only directory loads without creating files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "key.properties"), []byte("key"), 0644))
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0700) })

		data, err := NewFileStore(dir, "key.properties").Load()
		require.NoError(t, err)
		assert.Equal(t, []byte("key"), data)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "key.properties", entries[0].Name())
	})

	t.Run("existing lock file is honoured", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFileStore(dir, "key.properties")
		require.NoError(t, s.Save([]byte("key")))
		_, err := os.Stat(filepath.Join(dir, "key.properties.lock"))
		require.NoError(t, err)

		data, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, []byte("key"), data)
	})
}

func TestFileStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config", "nested")
	s := NewFileStore(dir, "key.properties")

	require.NoError(t, s.Save([]byte("first")))
	require.NoError(t, s.Save([]byte("second")))

	data, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	info, err := os.Stat(s.Location())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp file left behind")
	}
}

func TestFileStoreDelete(t *testing.T) {
	t.Run("missing file returns ErrNotFound", func(t *testing.T) {
		s := NewFileStore(t.TempDir(), "key.properties")
		assert.ErrorIs(t, s.Delete(), ErrNotFound)
	})

	t.Run("leaves an empty file behind", func(t *testing.T) {
		s := NewFileStore(t.TempDir(), "key.properties")
		require.NoError(t, s.Save([]byte("secret")))

		require.NoError(t, s.Delete())

		info, err := os.Stat(s.Location())
		require.NoError(t, err)
		assert.Zero(t, info.Size())

		_, err = s.Load()
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("second delete on empty file succeeds", func(t *testing.T) {
		s := NewFileStore(t.TempDir(), "key.properties")
		require.NoError(t, s.Save([]byte("secret")))
		require.NoError(t, s.Delete())

		assert.NoError(t, s.Delete())
	})
}

func TestReadErrorUnwrap(t *testing.T) {
	err := &ReadError{Location: "/tmp/key", Err: os.ErrPermission}
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "/tmp/key")
}

func TestAcquireExclusiveThenShared(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "key.lock")

	unlock, err := acquire(lockPath, false)
	require.NoError(t, err)
	unlock()

	unlock, err = acquire(lockPath, true)
	require.NoError(t, err)
	unlock()
}
