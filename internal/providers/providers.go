// Package providers models the finite catalog of target integrations a kit
// can install into. Providers are a fixed, versioned catalog, not a runtime
// plugin surface: every dispatch over Provider or ContentType is an
// exhaustive switch so a new catalog entry fails compilation at every site
// that needs to learn about it.
package providers

import (
	"fmt"
	"sort"
	"strings"
)

// ContentType identifies the kind of kit content an item carries.
type ContentType string

const (
	// TypeAgent is a subagent definition.
	TypeAgent ContentType = "agent"
	// TypeCommand is a slash command / prompt definition.
	TypeCommand ContentType = "command"
	// TypeSkill is a filesystem-discovered skill bundle.
	TypeSkill ContentType = "skill"
	// TypeConfig is the provider settings file. Config is a scope singleton:
	// one settings file per provider and scope, regardless of item name.
	TypeConfig ContentType = "config"
	// TypeRules is a rules / custom-instructions document.
	TypeRules ContentType = "rules"
)

// ContentTypes lists every content type in stable order.
func ContentTypes() []ContentType {
	return []ContentType{TypeAgent, TypeCommand, TypeSkill, TypeConfig, TypeRules}
}

// Provider identifies a target integration.
type Provider string

const (
	// Claude is Claude Code (.claude).
	Claude Provider = "claude"
	// Codex is the Codex CLI (.codex).
	Codex Provider = "codex"
	// Cursor is the Cursor editor (.cursor).
	Cursor Provider = "cursor"
	// Gemini is the Gemini CLI (.gemini).
	Gemini Provider = "gemini"
	// Copilot is GitHub Copilot (.github project files).
	Copilot Provider = "copilot"
	// Windsurf is the Windsurf editor (.windsurf).
	Windsurf Provider = "windsurf"
)

// All lists every known provider in stable order.
func All() []Provider {
	return []Provider{Claude, Codex, Cursor, Gemini, Copilot, Windsurf}
}

// Parse resolves a provider id from config input.
func Parse(raw string) (Provider, error) {
	candidate := Provider(strings.ToLower(strings.TrimSpace(raw)))
	for _, p := range All() {
		if candidate == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q (supported: %s)", raw, SupportedList())
}

// SupportedList renders the provider catalog for error messages.
func SupportedList() string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = string(p)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Supports reports whether the provider can install the given content type.
func (p Provider) Supports(t ContentType) bool {
	switch p {
	case Claude:
		return true
	case Codex:
		return t == TypeCommand || t == TypeConfig || t == TypeRules
	case Cursor:
		return t == TypeCommand || t == TypeConfig || t == TypeRules
	case Gemini:
		return t == TypeCommand || t == TypeConfig || t == TypeRules
	case Copilot:
		return t == TypeCommand || t == TypeRules
	case Windsurf:
		return t == TypeCommand || t == TypeRules
	default:
		return false
	}
}

// SupportsGlobal reports whether the provider has a user-wide install
// location. Copilot and Windsurf content lives only inside a project.
func (p Provider) SupportsGlobal() bool {
	switch p {
	case Claude, Codex, Cursor, Gemini:
		return true
	case Copilot, Windsurf:
		return false
	default:
		return false
	}
}
