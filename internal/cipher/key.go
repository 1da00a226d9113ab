package cipher

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20poly1305"
)

var keyEncoding = base64.URLEncoding.Strict()

// Key is a serialized encryption key: URL-safe base64 of 32 random bytes.
// These are exactly the bytes kept in the key file.
type Key []byte

// GenerateKey returns a fresh random key.
// It panics if the system entropy source fails.
func GenerateKey() Key {
	raw := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(raw); err != nil {
		panic(fmt.Sprintf("cipher: entropy source failed: %v", err))
	}
	defer memguard.WipeBytes(raw)

	out := make(Key, keyEncoding.EncodedLen(len(raw)))
	keyEncoding.Encode(out, raw)
	return out
}

// Validate reports whether k decodes to key material of the right size.
func (k Key) Validate() error {
	raw, err := k.material()
	if err != nil {
		return err
	}
	memguard.WipeBytes(raw)
	return nil
}

// material decodes k into a new buffer the caller must wipe.
func (k Key) material() ([]byte, error) {
	raw := make([]byte, keyEncoding.DecodedLen(len(k)))
	n, err := keyEncoding.Decode(raw, k)
	if err != nil || n != chacha20poly1305.KeySize {
		memguard.WipeBytes(raw)
		return nil, ErrInvalidKey
	}
	return raw[:n], nil
}

// keySource hands out the key for one seal or open.
type keySource interface {
	open() (*memguard.LockedBuffer, error)
}

// enclaveKey keeps the decoded key encrypted in memory between uses.
type enclaveKey struct {
	enclave *memguard.Enclave
}

func newEnclaveKey(k Key) (*enclaveKey, error) {
	raw, err := k.material()
	if err != nil {
		return nil, err
	}
	// NewEnclave wipes raw.
	return &enclaveKey{enclave: memguard.NewEnclave(raw)}, nil
}

func (e *enclaveKey) open() (*memguard.LockedBuffer, error) {
	buf, err := e.enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open key enclave: %w", err)
	}
	return buf, nil
}

// noKey stands in for the reserved vault modes, which never load a key.
type noKey struct {
	mode Mode
}

func (n noKey) open() (*memguard.LockedBuffer, error) {
	return nil, fmt.Errorf("%w for mode %q", ErrNoKeyConfigured, n.mode)
}
