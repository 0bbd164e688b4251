package hashid

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash turns a raw client address into a fixed-length bucket key.
// It is deterministic and total: the same input always produces the same
// 32-character hex string, and the empty string maps to the digest of "".
// The digest is used for privacy-preserving bucketing (rate limiting,
// logging) so raw addresses never appear in logs or in-memory keys;
// collision resistance beyond SHA-256 truncation is not a goal.
func Hash(addr string) string {
	sum := sha256.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:16])
}
