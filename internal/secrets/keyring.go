package secrets

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/adrg/xdg"
)

// KeyringStore implements the Store interface using the OS keyring.
// The serialized key is kept as a single item; an empty item stands in
// for an emptied key file.
type KeyringStore struct {
	ring keyring.Keyring
	item string
}

// DefaultKeyringConfig returns the keyring configuration used by the CLI.
// WSL and headless Linux are limited to the encrypted file backend.
func DefaultKeyringConfig() keyring.Config {
	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true, // macOS: don't prompt every access
		FileDir:                  filepath.Join(xdg.DataHome, ServiceName, "keyring"),
		FilePasswordFunc:         keyring.TerminalPrompt,
	}
	if needsFileBackend() {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	return cfg
}

// NewKeyringStore opens the keyring described by cfg and stores the key under item.
// Returns an error if the keyring is unavailable on this platform.
func NewKeyringStore(cfg keyring.Config, item string) (*KeyringStore, error) {
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return &KeyringStore{ring: ring, item: item}, nil
}

// Location describes the keyring item holding the key.
func (s *KeyringStore) Location() string {
	return "keyring:" + s.item
}

// Load retrieves the key from the keyring.
func (s *KeyringStore) Load() ([]byte, error) {
	it, err := s.ring.Get(s.item)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, &ReadError{Location: s.Location(), Err: err}
	}
	if len(it.Data) == 0 {
		return nil, ErrEmpty
	}
	return it.Data, nil
}

// Save stores the key in the keyring, replacing any previous value.
func (s *KeyringStore) Save(data []byte) error {
	if err := s.ring.Set(s.newItem(data)); err != nil {
		return fmt.Errorf("keyring set failed: %w", err)
	}
	return nil
}

// Delete replaces the stored key with an empty item.
func (s *KeyringStore) Delete() error {
	if _, err := s.ring.Get(s.item); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("keyring get failed: %w", err)
	}

	if err := s.ring.Remove(s.item); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	if err := s.ring.Set(s.newItem(nil)); err != nil {
		return fmt.Errorf("keyring set failed: %w", err)
	}
	return nil
}

func (s *KeyringStore) newItem(data []byte) keyring.Item {
	return keyring.Item{
		Key:         s.item,
		Data:        data,
		Label:       ServiceName + " encryption key",
		Description: "pwcipher symmetric key",
	}
}
