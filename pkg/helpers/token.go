package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

const tokenBytes = 32

// GenerateTokenHash mints an opaque bearer credential from a cryptographically
// strong random source, rendered as base64.
func GenerateTokenHash() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
