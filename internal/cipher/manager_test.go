package cipher

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semmy-space/pwcipher/internal/secrets"
)

func TestLoadKey(t *testing.T) {
	t.Run("nonexistent path", func(t *testing.T) {
		km, err := NewKeyManager(Options{BaseDir: filepath.Join(t.TempDir(), "missing")})
		require.NoError(t, err)

		_, err = km.LoadKey()
		assert.ErrorIs(t, err, ErrKeyFileNotFound)
	})

	t.Run("zero-length file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.key"), nil, 0600))

		km, err := NewKeyManager(Options{BaseDir: dir, KeyFile: "custom.key"})
		require.NoError(t, err)

		_, err = km.LoadKey()
		assert.ErrorIs(t, err, ErrKeyFileEmpty)
	})

	t.Run("unreadable file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, DefaultKeyFile, "child"), 0700))

		km, err := NewKeyManager(Options{BaseDir: dir})
		require.NoError(t, err)

		_, err = km.LoadKey()
		var readErr *KeyReadError
		assert.ErrorAs(t, err, &readErr)
	})
}

func TestSaveKey(t *testing.T) {
	t.Run("generates a fresh key each call", func(t *testing.T) {
		km, err := NewKeyManager(Options{BaseDir: t.TempDir()})
		require.NoError(t, err)

		first, err := km.SaveKey(nil)
		require.NoError(t, err)
		second, err := km.SaveKey(nil)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		loaded, err := km.LoadKey()
		require.NoError(t, err)
		assert.Equal(t, second, loaded)
	})

	t.Run("writes raw key bytes without framing", func(t *testing.T) {
		dir := t.TempDir()
		km, err := NewKeyManager(Options{BaseDir: dir})
		require.NoError(t, err)

		key, err := km.SaveKey(nil)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, DefaultKeyFile))
		require.NoError(t, err)
		assert.Equal(t, []byte(key), data)
		assert.Len(t, data, 44)
	})

	t.Run("persists a provided key", func(t *testing.T) {
		km, err := NewKeyManager(Options{BaseDir: t.TempDir()})
		require.NoError(t, err)

		want := GenerateKey()
		got, err := km.SaveKey(want)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		loaded, err := km.LoadKey()
		require.NoError(t, err)
		assert.Equal(t, want, loaded)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		dir := t.TempDir()
		km, err := NewKeyManager(Options{BaseDir: dir})
		require.NoError(t, err)

		_, err = km.SaveKey(Key("short"))
		assert.ErrorIs(t, err, ErrInvalidKey)
		assert.NoFileExists(t, filepath.Join(dir, DefaultKeyFile))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "c")
		km, err := NewKeyManager(Options{BaseDir: dir})
		require.NoError(t, err)

		_, err = km.SaveKey(nil)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, DefaultKeyFile))
	})
}

func TestDeleteKey(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		km, err := NewKeyManager(Options{BaseDir: t.TempDir()})
		require.NoError(t, err)

		assert.ErrorIs(t, km.DeleteKey(), ErrKeyFileNotFound)
	})

	t.Run("leaves empty placeholder", func(t *testing.T) {
		dir := t.TempDir()
		km, err := NewKeyManager(Options{BaseDir: dir})
		require.NoError(t, err)
		_, err = km.SaveKey(nil)
		require.NoError(t, err)

		require.NoError(t, km.DeleteKey())

		info, err := os.Stat(filepath.Join(dir, DefaultKeyFile))
		require.NoError(t, err)
		assert.Zero(t, info.Size())

		_, err = km.LoadKey()
		assert.ErrorIs(t, err, ErrKeyFileEmpty)

		// Present but empty: a second delete does not report not-found.
		assert.NoError(t, km.DeleteKey())
		_, err = km.LoadKey()
		assert.ErrorIs(t, err, ErrKeyFileEmpty)
	})

	t.Run("logs unexpected errors", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		km, err := NewKeyManager(Options{Store: failingStore{}, Logger: logger})
		require.NoError(t, err)

		err = km.DeleteKey()
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Contains(t, logs.String(), "failed to delete key")
		assert.Contains(t, logs.String(), "location=failing")
	})

	t.Run("does not log not-found", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		km, err := NewKeyManager(Options{BaseDir: t.TempDir(), Logger: logger})
		require.NoError(t, err)

		assert.ErrorIs(t, km.DeleteKey(), ErrKeyFileNotFound)
		assert.Empty(t, logs.String())
	})
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	km, err := NewKeyManager(Options{BaseDir: dir})
	require.NoError(t, err)

	st := km.Status()
	assert.Equal(t, ModeLocal, st.Mode)
	assert.Equal(t, filepath.Join(dir, DefaultKeyFile), st.Location)
	assert.False(t, st.Exists)

	_, err = km.SaveKey(nil)
	require.NoError(t, err)
	st = km.Status()
	assert.True(t, st.Exists)
	assert.True(t, st.Valid)
	assert.Equal(t, 44, st.Size)

	require.NoError(t, km.DeleteKey())
	st = km.Status()
	assert.True(t, st.Exists)
	assert.False(t, st.Valid)
	assert.Zero(t, st.Size)
}

func TestKeyringMode(t *testing.T) {
	store, err := secrets.NewKeyringStore(keyring.Config{
		ServiceName:      secrets.ServiceName,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: keyring.FixedStringPrompt("test-password"),
	}, DefaultKeyFile)
	require.NoError(t, err)

	opts := Options{Mode: ModeKeyring, Store: store}

	_, err = New(opts)
	assert.ErrorIs(t, err, ErrKeyFileNotFound)

	km, err := NewKeyManager(opts)
	require.NoError(t, err)
	_, err = km.SaveKey(nil)
	require.NoError(t, err)

	c, err := New(opts)
	require.NoError(t, err)
	token, err := c.Encrypt("hunter2")
	require.NoError(t, err)
	plain, err := c.Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}

type failingStore struct{}

func (failingStore) Load() ([]byte, error) { return nil, os.ErrPermission }
func (failingStore) Save([]byte) error     { return os.ErrPermission }
func (failingStore) Delete() error         { return os.ErrPermission }
func (failingStore) Location() string      { return "failing" }
