package providers

import (
	"fmt"
	"path/filepath"
)

// InstallPath returns the absolute path the provider installs an item to,
// under root (the project root, or the user's home dir for global scope).
// item is the kit item name without extension.
func (p Provider) InstallPath(root string, t ContentType, item string) (string, error) {
	if !p.Supports(t) {
		return "", fmt.Errorf("provider %s does not support %s content", p, t)
	}
	return filepath.Join(root, filepath.FromSlash(p.relInstallPath(t, item))), nil
}

// relInstallPath is the slash-separated path relative to the scope root.
// This layout is versioned: changing it requires a provider path migration
// directive in the kit manifest, or existing installs become unreachable.
func (p Provider) relInstallPath(t ContentType, item string) string {
	switch p {
	case Claude:
		switch t {
		case TypeAgent:
			return ".claude/agents/" + item + ".md"
		case TypeCommand:
			return ".claude/commands/" + item + ".md"
		case TypeSkill:
			return ".claude/skills/" + item + "/SKILL.md"
		case TypeConfig:
			return ".claude/settings.json"
		case TypeRules:
			return ".claude/rules/" + item + ".md"
		}
	case Codex:
		switch t {
		case TypeCommand:
			return ".codex/prompts/" + item + ".md"
		case TypeConfig:
			return ".codex/config.toml"
		case TypeRules:
			return ".codex/rules/" + item + ".md"
		case TypeAgent, TypeSkill:
		}
	case Cursor:
		switch t {
		case TypeCommand:
			return ".cursor/commands/" + item + ".md"
		case TypeConfig:
			return ".cursor/settings.json"
		case TypeRules:
			return ".cursor/rules/" + item + ".mdc"
		case TypeAgent, TypeSkill:
		}
	case Gemini:
		switch t {
		case TypeCommand:
			return ".gemini/commands/" + item + ".toml"
		case TypeConfig:
			return ".gemini/settings.json"
		case TypeRules:
			return ".gemini/rules/" + item + ".md"
		case TypeAgent, TypeSkill:
		}
	case Copilot:
		switch t {
		case TypeCommand:
			return ".github/prompts/" + item + ".prompt.md"
		case TypeRules:
			return ".github/instructions/" + item + ".instructions.md"
		case TypeAgent, TypeSkill, TypeConfig:
		}
	case Windsurf:
		switch t {
		case TypeCommand:
			return ".windsurf/workflows/" + item + ".md"
		case TypeRules:
			return ".windsurf/rules/" + item + ".md"
		case TypeAgent, TypeSkill, TypeConfig:
		}
	}
	return ""
}
