package textutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hex hash of a string, used to detect changed
// legalcode content between imports.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
