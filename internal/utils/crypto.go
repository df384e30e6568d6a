package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex digest of b, used to fingerprint stored documents.
func SHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
