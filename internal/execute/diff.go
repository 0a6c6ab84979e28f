package execute

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/mrgoonie/claudekit/internal/messages"
)

// DefaultDiffMaxLines caps the per-conflict diff shown during prompting.
const DefaultDiffMaxLines = 40

// ConflictDiff renders a unified diff from the target's current content to
// the kit's incoming content, truncated to maxLines. Used by the conflict
// prompt so the user sees what overwriting would change.
func ConflictDiff(path string, current, incoming []byte, maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultDiffMaxLines
	}
	unified := udiff.Unified(path+" (current)", path+" (kit)", string(current), string(incoming))
	if unified == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(unified, "\n"), "\n")
	if len(lines) <= maxLines {
		return unified
	}
	truncated := strings.Join(lines[:maxLines], "\n")
	return truncated + "\n" + fmt.Sprintf(messages.PromptDiffTruncatedNoteFmt, maxLines)
}
