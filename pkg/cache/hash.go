package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key derives a cache key from the inputs that determine a layout result.
// Identical graph and configuration bytes always produce the same key.
func Key(prefix string, parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0}) // separator so ("ab","c") != ("a","bc")
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
