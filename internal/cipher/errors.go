package cipher

import (
	"errors"

	"github.com/semmy-space/pwcipher/internal/secrets"
)

var (
	// ErrKeyFileNotFound is returned when the key does not exist in its store.
	ErrKeyFileNotFound = secrets.ErrNotFound

	// ErrKeyFileEmpty is returned when the key exists but has zero length.
	ErrKeyFileEmpty = secrets.ErrEmpty

	// ErrInvalidKey is returned when stored or supplied bytes are not a serialized key.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrEmptyInput is returned by Encrypt for an empty password.
	ErrEmptyInput = errors.New("password must be a non-empty string")

	// ErrInvalidLength is returned by GeneratePassword for a non-positive length.
	ErrInvalidLength = errors.New("password length must be a positive integer")

	// ErrInvalidCiphertext covers every token rejection: malformed, tampered,
	// expired, encrypted under another key, or not valid UTF-8 once opened.
	ErrInvalidCiphertext = errors.New("invalid or corrupted encrypted password")

	// ErrNoKeyConfigured is returned by encrypt and decrypt in modes that carry no key.
	ErrNoKeyConfigured = errors.New("no encryption key configured")

	// ErrUnknownMode is returned for a mode name outside the supported set.
	ErrUnknownMode = errors.New("unknown vault mode")
)

// KeyReadError wraps an I/O failure reading a key that exists and is non-empty.
type KeyReadError = secrets.ReadError
