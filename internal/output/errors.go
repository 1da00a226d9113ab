package output

import (
	"errors"

	"github.com/semmy-space/pwcipher/internal/cipher"
	"github.com/semmy-space/pwcipher/internal/secrets"
)

// Exit codes following sysexits.h convention
const (
	ExitOK          = 0  // Success
	ExitGeneral     = 1  // General error
	ExitUsage       = 2  // Invalid usage / bad arguments
	ExitNotFound    = 4  // Key not found
	ExitConflict    = 5  // Key already exists
	ExitConfigError = 10 // Configuration error (empty/invalid key, keyless mode)
	ExitDataError   = 65 // Token rejected (EX_DATAERR)
	ExitIOError     = 74 // Key could not be read or written (EX_IOERR)
	ExitTempFail    = 75 // Key lock busy (EX_TEMPFAIL)
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
	Err      error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error, if any
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// FromError converts a cipher or storage error into a CLIError with the
// matching exit code. A CLIError is returned unchanged; nil stays nil.
func FromError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	wrap := func(code int, hint string) *CLIError {
		return &CLIError{ExitCode: code, Message: err.Error(), Hint: hint, Err: err}
	}

	var readErr *cipher.KeyReadError
	switch {
	case errors.Is(err, cipher.ErrKeyFileNotFound):
		return wrap(ExitNotFound, "Run: pwcipher key create")
	case errors.Is(err, cipher.ErrKeyFileEmpty):
		return wrap(ExitConfigError, "The key was deleted. Run: pwcipher key create --force")
	case errors.Is(err, cipher.ErrInvalidKey):
		return wrap(ExitConfigError, "The stored key is corrupt. Run: pwcipher key create --force")
	case errors.Is(err, cipher.ErrNoKeyConfigured):
		return wrap(ExitConfigError, "Vault modes are not implemented. Run: pwcipher config set mode local")
	case errors.Is(err, cipher.ErrUnknownMode):
		return wrap(ExitUsage, "Run: pwcipher modes")
	case errors.Is(err, cipher.ErrEmptyInput), errors.Is(err, cipher.ErrInvalidLength):
		return wrap(ExitUsage, "")
	case errors.Is(err, cipher.ErrInvalidCiphertext):
		return wrap(ExitDataError, "")
	case errors.Is(err, secrets.ErrLockTimeout):
		return wrap(ExitTempFail, "Another pwcipher process holds the key lock; try again")
	case errors.As(err, &readErr):
		return wrap(ExitIOError, "")
	default:
		return &CLIError{ExitCode: ExitGeneral, Message: err.Error(), Err: err}
	}
}
