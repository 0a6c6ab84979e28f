package providers

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Convert rewrites canonical kit content into the form the provider
// actually installs. The reconciler digests converted content, not kit
// content, so Convert must be deterministic for identical inputs.
func (p Provider) Convert(t ContentType, content []byte) ([]byte, error) {
	text := normalizeText(content)
	switch p {
	case Claude, Codex:
		return []byte(text), nil
	case Cursor:
		if t == TypeRules {
			return []byte(ensureFrontmatter(text, "alwaysApply: false")), nil
		}
		return []byte(text), nil
	case Gemini:
		if t == TypeCommand {
			return geminiCommandTOML(text)
		}
		return []byte(text), nil
	case Copilot:
		if t == TypeCommand {
			return []byte(ensureFrontmatter(text, "mode: agent")), nil
		}
		return []byte(text), nil
	case Windsurf:
		if t == TypeRules {
			return []byte(ensureFrontmatter(text, "trigger: manual")), nil
		}
		return []byte(text), nil
	default:
		return nil, fmt.Errorf("unknown provider %s", p)
	}
}

// normalizeText unifies line endings and guarantees a trailing newline so
// checksums do not flap across platforms.
func normalizeText(content []byte) string {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// ensureFrontmatter prepends a minimal frontmatter block when the content
// has none. Existing frontmatter is left untouched: the kit author's
// metadata wins over the provider default.
func ensureFrontmatter(text, defaultLine string) string {
	if strings.HasPrefix(text, "---\n") {
		return text
	}
	return "---\n" + defaultLine + "\n---\n" + text
}

// geminiCommand is the TOML shape of a Gemini CLI custom command.
type geminiCommand struct {
	Description string `toml:"description,omitempty"`
	Prompt      string `toml:"prompt"`
}

// geminiCommandTOML converts a markdown command into Gemini's TOML command
// format: the frontmatter description becomes the description field and the
// body becomes the prompt.
func geminiCommandTOML(text string) ([]byte, error) {
	meta, body := splitFrontmatter(text)
	cmd := geminiCommand{
		Description: frontmatterValue(meta, "description"),
		Prompt:      strings.TrimLeft(body, "\n"),
	}
	encoded, err := toml.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode gemini command: %w", err)
	}
	return encoded, nil
}

// splitFrontmatter separates a leading "---" block from the body. Returns
// empty metadata when the content has no frontmatter.
func splitFrontmatter(text string) (meta string, body string) {
	if !strings.HasPrefix(text, "---\n") {
		return "", text
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return "", text
	}
	return rest[:end], rest[end+len("\n---\n"):]
}

// frontmatterValue extracts a simple "key: value" line from frontmatter.
// Kit frontmatter is intentionally flat; nested YAML is not supported here.
func frontmatterValue(meta, key string) string {
	for _, line := range strings.Split(meta, "\n") {
		trimmed := strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(trimmed, key+":"); ok {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}
