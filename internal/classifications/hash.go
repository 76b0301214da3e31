package classifications

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeContent lower-cases content and collapses all whitespace runs to
// single spaces, so trivially reformatted text hashes identically.
func NormalizeContent(content string) string {
	return strings.Join(strings.Fields(strings.ToLower(content)), " ")
}

// ContentHash returns the hex SHA-256 of the normalized content. It feeds
// the dedup uniqueness constraint alongside source file and page.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(NormalizeContent(content)))
	return hex.EncodeToString(sum[:])
}
