package secrets

import (
	"errors"
	"fmt"
)

// Store is the interface for key material storage.
// A store holds exactly one serialized key.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
	Location() string
}

var (
	// ErrNotFound is returned when the key does not exist in the store
	ErrNotFound = errors.New("key file not found")

	// ErrEmpty is returned when the key exists but holds no bytes
	ErrEmpty = errors.New("key file is empty")

	// ErrLockTimeout is returned when the key lock could not be acquired in time
	ErrLockTimeout = errors.New("timed out waiting for key lock")
)

// ServiceName is the service identifier for keyring storage
const ServiceName = "pwcipher"

// ReadError wraps any failure to read key material that exists and is non-empty.
type ReadError struct {
	Location string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read key at %s: %v", e.Location, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
