// Package pathutil canonicalizes install paths so registry and target-state
// lookups behave identically regardless of the OS separator the path was
// recorded with, and so path matching is always segment-wise rather than
// substring-based.
package pathutil

import "strings"

// Normalize returns path in canonical form: forward slashes, no empty or
// "." segments, no trailing slash. A Windows-style drive or UNC prefix is
// preserved as the first segment. ".." segments are preserved; rejecting
// them is the caller's policy, not a normalization concern.
func Normalize(path string) string {
	unified := strings.ReplaceAll(path, "\\", "/")
	rooted := strings.HasPrefix(unified, "/")
	segments := splitSegments(unified)
	joined := strings.Join(segments, "/")
	if rooted {
		return "/" + joined
	}
	return joined
}

// Equal reports whether two paths are the same after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ContainsSegments reports whether needle occurs in haystack as a run of
// whole segments. "agents/plan.md" is contained in "kit/agents/plan.md"
// but not in "kit/sub-agents/plan.md.bak".
func ContainsSegments(haystack, needle string) bool {
	haySegments := splitSegments(strings.ReplaceAll(haystack, "\\", "/"))
	needleSegments := splitSegments(strings.ReplaceAll(needle, "\\", "/"))
	if len(needleSegments) == 0 {
		return false
	}
	for start := 0; start+len(needleSegments) <= len(haySegments); start++ {
		if segmentsEqual(haySegments[start:start+len(needleSegments)], needleSegments) {
			return true
		}
	}
	return false
}

// IsAbsolute reports whether path is absolute in either POSIX or Windows
// form (leading slash, drive letter, or UNC prefix).
func IsAbsolute(path string) bool {
	unified := strings.ReplaceAll(path, "\\", "/")
	if strings.HasPrefix(unified, "/") {
		return true
	}
	// Drive letter: "C:/..." or bare "C:".
	if len(unified) >= 2 && unified[1] == ':' {
		c := unified[0]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

// HasParentSegment reports whether path contains a ".." segment.
func HasParentSegment(path string) bool {
	for _, segment := range splitSegments(strings.ReplaceAll(path, "\\", "/")) {
		if segment == ".." {
			return true
		}
	}
	return false
}

func splitSegments(unified string) []string {
	parts := strings.Split(unified, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

func segmentsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
