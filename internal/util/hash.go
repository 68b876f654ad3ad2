package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex SHA-256 digest of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
