// Package checksum computes and compares content digests used to detect
// drift between kit source, the install registry, and target files.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Unknown is the sentinel digest meaning "could not be verified". It is
// distinct from the empty string (no digest recorded at all) and never
// compares equal to anything, including itself: an unverifiable digest must
// not drive a destructive decision.
const Unknown = "unknown"

// prefix is the optional algorithm tag accepted on stored digests.
const prefix = "sha256:"

// Compute returns the normalized sha256 digest of data.
func Compute(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Normalize canonicalizes a stored digest: trims whitespace, lowercases,
// and strips an optional "sha256:" tag. The Unknown sentinel and the empty
// string pass through unchanged.
func Normalize(digest string) string {
	trimmed := strings.ToLower(strings.TrimSpace(digest))
	if trimmed == Unknown || trimmed == "" {
		return trimmed
	}
	return strings.TrimPrefix(trimmed, prefix)
}

// Known reports whether digest carries a usable value: non-empty and not
// the Unknown sentinel.
func Known(digest string) bool {
	normalized := Normalize(digest)
	return normalized != "" && normalized != Unknown
}

// Equal reports whether two digests are both known and identical after
// normalization. If either side is empty or Unknown, Equal returns false:
// "cannot verify" is never "verified equal".
func Equal(a, b string) bool {
	if !Known(a) || !Known(b) {
		return false
	}
	return Normalize(a) == Normalize(b)
}

// Differ reports whether two digests are both known and distinct after
// normalization. Like Equal, an unknown side yields false: an unverifiable
// digest is neither equal nor different.
func Differ(a, b string) bool {
	if !Known(a) || !Known(b) {
		return false
	}
	return Normalize(a) != Normalize(b)
}
