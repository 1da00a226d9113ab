package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semmy-space/pwcipher/internal/cipher"
	"github.com/semmy-space/pwcipher/internal/secrets"
)

func TestNewCLIError(t *testing.T) {
	err := NewCLIError(ExitNotFound, "key not found")
	assert.Equal(t, ExitNotFound, err.ExitCode)
	assert.Equal(t, "key not found", err.Message)
	assert.Empty(t, err.Hint)
}

func TestCLIErrorWithHint(t *testing.T) {
	err := NewCLIError(ExitNotFound, "key not found")
	result := err.WithHint("Run: pwcipher key create")

	// Fluent builder returns same pointer
	assert.Same(t, err, result)
	assert.Equal(t, "Run: pwcipher key create", err.Hint)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		withHint bool
	}{
		{name: "not found", err: cipher.ErrKeyFileNotFound, code: ExitNotFound, withHint: true},
		{name: "wrapped not found", err: fmt.Errorf("loading: %w", cipher.ErrKeyFileNotFound), code: ExitNotFound, withHint: true},
		{name: "empty", err: cipher.ErrKeyFileEmpty, code: ExitConfigError, withHint: true},
		{name: "invalid key", err: cipher.ErrInvalidKey, code: ExitConfigError, withHint: true},
		{name: "no key", err: cipher.ErrNoKeyConfigured, code: ExitConfigError, withHint: true},
		{name: "unknown mode", err: cipher.ErrUnknownMode, code: ExitUsage, withHint: true},
		{name: "empty input", err: cipher.ErrEmptyInput, code: ExitUsage},
		{name: "invalid length", err: cipher.ErrInvalidLength, code: ExitUsage},
		{name: "invalid token", err: cipher.ErrInvalidCiphertext, code: ExitDataError},
		{name: "lock timeout", err: secrets.ErrLockTimeout, code: ExitTempFail, withHint: true},
		{name: "read error", err: &secrets.ReadError{Location: "/k", Err: os.ErrPermission}, code: ExitIOError},
		{name: "other", err: errors.New("boom"), code: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.code, got.ExitCode)
			assert.Equal(t, tt.withHint, got.Hint != "")
			assert.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FromError(nil))
	})

	t.Run("unmapped error prints with a single prefix", func(t *testing.T) {
		var errOut bytes.Buffer
		NewWithWriters("plain", &bytes.Buffer{}, &errOut).PrintError(FromError(errors.New("boom")))
		assert.Equal(t, "error: boom\n", errOut.String())
	})

	t.Run("CLIError passes through", func(t *testing.T) {
		in := NewCLIError(ExitUsage, "bad")
		assert.Same(t, in, FromError(in))
	})
}
