package cipher

import (
	"errors"
	"log/slog"
	"time"

	"github.com/semmy-space/pwcipher/internal/config"
	"github.com/semmy-space/pwcipher/internal/secrets"
)

// DefaultKeyFile is the key file name used when none is configured.
const DefaultKeyFile = "key.properties"

// Options configures a KeyManager or Cipher. Zero values select defaults.
type Options struct {
	// BaseDir holds the key file. Defaults to config.KeyDir().
	BaseDir string
	// KeyFile is the key file name, or the keyring item name in keyring mode.
	KeyFile string
	// Mode selects the key backend. Empty means ModeLocal.
	Mode Mode
	// Store overrides the backend Mode would pick.
	Store secrets.Store
	// Logger receives delete failures. Defaults to slog.Default().
	Logger *slog.Logger
	// Now is the clock used to stamp and age tokens.
	Now func() time.Time
}

// KeyManager owns the lifecycle of the stored key.
type KeyManager struct {
	store  secrets.Store
	mode   Mode
	logger *slog.Logger
	now    func() time.Time
}

// KeyStatus describes the stored key without exposing it.
type KeyStatus struct {
	Mode     Mode
	Location string
	Exists   bool
	Size     int
	Valid    bool
}

// NewKeyManager builds a KeyManager. It does not touch the key.
func NewKeyManager(opts Options) (*KeyManager, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = config.KeyDir()
	}
	keyFile := opts.KeyFile
	if keyFile == "" {
		keyFile = DefaultKeyFile
	}

	store := opts.Store
	if store == nil {
		if mode == ModeKeyring {
			store, err = secrets.NewKeyringStore(secrets.DefaultKeyringConfig(), keyFile)
			if err != nil {
				return nil, err
			}
		} else {
			// The reserved vault modes still manage the local key file.
			store = secrets.NewFileStore(baseDir, keyFile)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &KeyManager{
		store:  store,
		mode:   mode,
		logger: logger,
		now:    now,
	}, nil
}

// Mode returns the configured vault mode.
func (m *KeyManager) Mode() Mode {
	return m.mode
}

// Location returns where the key is stored.
func (m *KeyManager) Location() string {
	return m.store.Location()
}

// LoadKey reads the stored key.
// Fails with ErrKeyFileNotFound, ErrKeyFileEmpty or *KeyReadError.
func (m *KeyManager) LoadKey() (Key, error) {
	data, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	return Key(data), nil
}

// SaveKey persists key, generating a new one if key is empty, and returns
// what was written. The replace is atomic on the file backend.
func (m *KeyManager) SaveKey(key Key) (Key, error) {
	if len(key) == 0 {
		key = GenerateKey()
	} else if err := key.Validate(); err != nil {
		return nil, err
	}

	if err := m.store.Save(key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeleteKey removes the stored key and leaves an empty placeholder in its
// place, so a later LoadKey fails with ErrKeyFileEmpty.
// Fails with ErrKeyFileNotFound if there is nothing to delete.
func (m *KeyManager) DeleteKey() error {
	err := m.store.Delete()
	if err != nil && !errors.Is(err, ErrKeyFileNotFound) {
		m.logger.Error("failed to delete key",
			slog.String("location", m.store.Location()),
			slog.Any("error", err),
		)
	}
	return err
}

// Status inspects the stored key.
func (m *KeyManager) Status() KeyStatus {
	st := KeyStatus{
		Mode:     m.mode,
		Location: m.store.Location(),
	}

	key, err := m.LoadKey()
	switch {
	case errors.Is(err, ErrKeyFileNotFound):
	case err != nil:
		st.Exists = true
	default:
		st.Exists = true
		st.Size = len(key)
		st.Valid = key.Validate() == nil
	}
	return st
}
