package cipher

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPasswordLength is the length used when the caller has no preference.
const DefaultPasswordLength = 12

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GeneratePassword returns length characters drawn uniformly and
// independently from [A-Za-z0-9] using crypto/rand.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	n := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		out[i] = passwordAlphabet[idx.Int64()]
	}

	return string(out), nil
}
