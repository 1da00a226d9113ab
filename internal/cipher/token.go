package cipher

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

// Token layout before base64:
//
//	version (1) | issued-at unix seconds (8, big endian) | nonce (24) | ciphertext+tag
//
// The 33-byte header is authenticated as additional data.
const (
	tokenVersion byte = 0x81
	nonceOffset       = 1 + 8
	headerSize        = nonceOffset + chacha20poly1305.NonceSizeX

	maxClockSkew = 60 * time.Second
)

var tokenEncoding = base64.URLEncoding.Strict()

func seal(key, plaintext []byte, now time.Time) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	buf := make([]byte, headerSize, headerSize+len(plaintext)+aead.Overhead())
	buf[0] = tokenVersion
	binary.BigEndian.PutUint64(buf[1:nonceOffset], uint64(now.Unix()))
	if _, err := rand.Read(buf[nonceOffset:headerSize]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	header := buf[:headerSize]
	raw := aead.Seal(buf, header[nonceOffset:], plaintext, header)

	token := make([]byte, tokenEncoding.EncodedLen(len(raw)))
	tokenEncoding.Encode(token, raw)
	return token, nil
}

// open authenticates token and returns its plaintext and issue time.
// Every failure is reported as ErrInvalidCiphertext.
func open(key, token []byte) ([]byte, time.Time, error) {
	raw := make([]byte, tokenEncoding.DecodedLen(len(token)))
	n, err := tokenEncoding.Decode(raw, token)
	if err != nil {
		return nil, time.Time{}, ErrInvalidCiphertext
	}
	raw = raw[:n]

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(raw) < headerSize+aead.Overhead() || raw[0] != tokenVersion {
		return nil, time.Time{}, ErrInvalidCiphertext
	}

	header := raw[:headerSize]
	plaintext, err := aead.Open(nil, header[nonceOffset:], raw[headerSize:], header)
	if err != nil {
		return nil, time.Time{}, ErrInvalidCiphertext
	}

	issued := time.Unix(int64(binary.BigEndian.Uint64(header[1:nonceOffset])), 0)
	return plaintext, issued, nil
}
