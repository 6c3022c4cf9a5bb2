package text

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the SHA-256 hex digest of content. Content is hashed
// as UTF-8 bytes, so two fingerprints are equal iff the decoded text is
// identical. Fingerprint("") is the sentinel for empty content and for the
// "new file" precondition.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
