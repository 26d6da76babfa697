package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hasher computes content digests for cache validators
type Hasher struct{}

// DefaultHasher returns the SHA-256 hasher
func DefaultHasher() *Hasher {
	return &Hasher{}
}

// Hash computes a hex digest of the input data
func (h *Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON computes a digest of a JSON-serializable value.
// Struct fields marshal in declaration order so the result is deterministic.
func (h *Hasher) HashJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return h.Hash(data), nil
}

// ETag returns a strong HTTP entity tag for the data
func (h *Hasher) ETag(data []byte) string {
	return `"` + h.Hash(data)[:16] + `"`
}
