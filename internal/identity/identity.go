// Package identity derives stable content-addressed identifiers for items.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Identify returns the stable identifier for a URL: the hex-encoded SHA-256 of
// the URL string. Byte-identical URLs always map to the same id, across runs
// and process restarts.
func Identify(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
