package services

import (
	"crypto/rand"
	"encoding/hex"
)

const tokenBytes = 32

// NewConfirmationToken returns 32 random bytes, hex encoded.
func NewConfirmationToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// plausibleToken screens lookups before they reach the database.
func plausibleToken(token string) bool {
	if len(token) < 10 || len(token) > 2*tokenBytes {
		return false
	}
	for _, r := range token {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
