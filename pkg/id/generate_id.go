package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewUniqueDataID builds the correlation key recorded on ledger blocks:
// a random UUID joined to the creation timestamp, e.g.
// "3b1f...-..._2025-01-02T08:34:05.123456+05:30".
func NewUniqueDataID(timestamp string) string {
	return uuid.NewString() + "_" + timestamp
}
