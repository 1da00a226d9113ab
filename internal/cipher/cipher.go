package cipher

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/awnumar/memguard"
)

// Cipher encrypts and decrypts short secrets under the stored key.
// Whether it holds a key is fixed at construction; later SaveKey or
// DeleteKey calls change storage only.
// A Cipher is safe for concurrent use.
type Cipher struct {
	*KeyManager
	key keySource
}

// New builds a Cipher. In local and keyring modes the key is loaded now and
// any load error is returned. In the reserved vault modes New succeeds but
// Encrypt and Decrypt fail with ErrNoKeyConfigured.
func New(opts Options) (*Cipher, error) {
	km, err := NewKeyManager(opts)
	if err != nil {
		return nil, err
	}

	c := &Cipher{KeyManager: km, key: noKey{mode: km.mode}}
	if !km.mode.HasKey() {
		return c, nil
	}

	k, err := km.LoadKey()
	if err != nil {
		return nil, err
	}
	src, err := newEnclaveKey(k)
	if err != nil {
		return nil, fmt.Errorf("%w at %s", err, km.Location())
	}
	c.key = src

	return c, nil
}

// HasKey reports whether encrypt and decrypt are available.
func (c *Cipher) HasKey() bool {
	_, ok := c.key.(*enclaveKey)
	return ok
}

// Encrypt returns a fresh token for password. Two calls with the same
// password yield different tokens.
func (c *Cipher) Encrypt(password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyInput
	}

	buf, err := c.key.open()
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()

	return seal(buf.Bytes(), []byte(password), c.now())
}

// Decrypt verifies token and returns the password it carries.
func (c *Cipher) Decrypt(token []byte) (string, error) {
	return c.DecryptWithTTL(token, 0)
}

// DecryptWithTTL is Decrypt that also rejects tokens issued more than ttl ago
// or dated more than a minute in the future. A ttl of zero or less disables
// the age check.
func (c *Cipher) DecryptWithTTL(token []byte, ttl time.Duration) (string, error) {
	plaintext, issued, err := c.open(token)
	if err != nil {
		return "", err
	}
	defer memguard.WipeBytes(plaintext)

	if ttl > 0 {
		now := c.now()
		if issued.Add(ttl).Before(now) || issued.After(now.Add(maxClockSkew)) {
			return "", ErrInvalidCiphertext
		}
	}

	if !utf8.Valid(plaintext) {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}

// ExtractTimestamp verifies token and returns the time it was issued.
func (c *Cipher) ExtractTimestamp(token []byte) (time.Time, error) {
	plaintext, issued, err := c.open(token)
	if err != nil {
		return time.Time{}, err
	}
	memguard.WipeBytes(plaintext)
	return issued, nil
}

// GeneratePassword is the package-level GeneratePassword; it needs no key.
func (c *Cipher) GeneratePassword(length int) (string, error) {
	return GeneratePassword(length)
}

func (c *Cipher) open(token []byte) ([]byte, time.Time, error) {
	buf, err := c.key.open()
	if err != nil {
		return nil, time.Time{}, err
	}
	defer buf.Destroy()

	return open(buf.Bytes(), token)
}
