// Package version normalizes and compares ClaudeKit release versions.
// Versions are plain semver triples; prerelease and build metadata are not
// used by kit releases and are rejected.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrgoonie/claudekit/internal/messages"
)

// Normalize validates raw as vX.Y.Z or X.Y.Z and returns the bare X.Y.Z form.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "v")
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
		}
		if _, err := strconv.Atoi(part); err != nil {
			return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
		}
	}
	return trimmed, nil
}

// Compare returns -1, 0, or 1 ordering two normalized versions numerically.
// Inputs must already be normalized; malformed segments compare as zero.
func Compare(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")
	for i := 0; i < 3; i++ {
		av := segment(aParts, i)
		bv := segment(bParts, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

// AtMost reports whether a <= b for two normalized versions.
func AtMost(a, b string) bool {
	return Compare(a, b) <= 0
}

func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	value, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return value
}
