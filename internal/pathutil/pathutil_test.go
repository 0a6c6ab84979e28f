package pathutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "a/b/c.md", want: "a/b/c.md"},
		{in: `a\b\c.md`, want: "a/b/c.md"},
		{in: "a//b/./c.md", want: "a/b/c.md"},
		{in: "a/b/", want: "a/b"},
		{in: "/home/user/.claude/agents/x.md", want: "/home/user/.claude/agents/x.md"},
		{in: "", want: ""},
		{in: ".", want: ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqualIsSeparatorIndependent(t *testing.T) {
	if !Equal(`.claude\agents\plan.md`, ".claude/agents/plan.md") {
		t.Fatal("backslash and slash forms must compare equal")
	}
	if Equal("a/b", "a/b/c") {
		t.Fatal("distinct paths must not compare equal")
	}
}

func TestContainsSegments(t *testing.T) {
	cases := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{"kit/agents/plan.md", "agents/plan.md", true},
		{"kit/agents/plan.md", "agents", true},
		{`kit\agents\plan.md`, "agents/plan.md", true},
		// Substring of a segment is not containment.
		{"kit/sub-agents/plan.md", "agents", false},
		{"kit/agents/plan.md.bak", "plan.md", false},
		{"kit/agents/plan.md", "plan", false},
		{"kit/agents/plan.md", "", false},
		{"a/b", "a/b/c", false},
	}
	for _, tc := range cases {
		if got := ContainsSegments(tc.haystack, tc.needle); got != tc.want {
			t.Fatalf("ContainsSegments(%q, %q) = %v, want %v", tc.haystack, tc.needle, got, tc.want)
		}
	}
}

func TestIsAbsolute(t *testing.T) {
	for _, path := range []string{"/etc/passwd", `C:\Users\x`, "c:/x", `\\server\share`} {
		if !IsAbsolute(path) {
			t.Fatalf("expected %q to be absolute", path)
		}
	}
	for _, path := range []string{"agents/plan.md", "./x", "c.md"} {
		if IsAbsolute(path) {
			t.Fatalf("expected %q to be relative", path)
		}
	}
}

func TestHasParentSegment(t *testing.T) {
	if !HasParentSegment("a/../b") {
		t.Fatal("expected .. segment to be detected")
	}
	if !HasParentSegment(`..\x`) {
		t.Fatal("expected leading backslash .. to be detected")
	}
	if HasParentSegment("a/b..c/..d") {
		t.Fatal(".. inside a segment name is not a parent segment")
	}
}
