package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewLinearID returns a fresh linear identifier (random UUID) tying all
// successive versions of one logical loan together.
func NewLinearID() string {
	return uuid.NewString()
}

// IsLinearID reports whether s parses as a linear identifier.
func IsLinearID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// NewKey32 returns exactly 32 hex characters (no separators/prefixes), used
// as a signer-key fingerprint.
func NewKey32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
