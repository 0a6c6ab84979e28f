// Package reconcile turns three independently drifting states — what the
// kit ships, what the registry recorded at last install, and what is on
// disk right now — into an ordered action plan. The whole package is a pure
// function of its inputs: no I/O, no clock, no randomness. Collaborators
// materialize every checksum and file state before calling in, and the
// execution layer carries the plan out afterwards.
package reconcile

import (
	"github.com/mrgoonie/claudekit/internal/manifest"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/registry"
)

// PlanSchemaVersion is the JSON schema version for plan output.
const PlanSchemaVersion = 1

// ActionKind identifies what the plan wants done with one item on one
// provider. Every switch over ActionKind must list all five kinds so a new
// kind cannot silently fall through.
type ActionKind string

const (
	// ActionInstall writes content that is not currently installed.
	ActionInstall ActionKind = "install"
	// ActionUpdate overwrites an unmodified installed file with new kit content.
	ActionUpdate ActionKind = "update"
	// ActionSkip leaves the target alone.
	ActionSkip ActionKind = "skip"
	// ActionConflict needs an explicit user resolution before execution.
	ActionConflict ActionKind = "conflict"
	// ActionDelete removes an installed file and its registry entry.
	ActionDelete ActionKind = "delete"
)

// SourceItemState is the reconciler's view of one item the kit currently
// ships. ConvertedChecksums digest the content as each provider would
// install it, since providers reformat content before writing.
type SourceItemState struct {
	Item               string                        `json:"item"`
	Type               providers.ContentType         `json:"type"`
	SourcePath         string                        `json:"source_path"`
	SourceChecksum     string                        `json:"source_checksum"`
	ConvertedChecksums map[providers.Provider]string `json:"converted_checksums"`
}

// ProviderConfig is one provider × scope combination to reconcile against.
// Root is the scope root directory (project root, or home dir for global),
// resolved by the caller so the core never touches the environment.
type ProviderConfig struct {
	Provider providers.Provider `json:"provider"`
	Global   bool               `json:"global"`
	Root     string             `json:"-"`
}

// TargetFileState is the probed state of one path the registry references.
// CurrentChecksum is set only when the file exists and was readable;
// a probe failure is represented as checksum.Unknown, never as an error.
type TargetFileState struct {
	Path            string
	Exists          bool
	CurrentChecksum string
}

// Action is one planned operation, carrying whichever checksums the
// decision consulted so downstream tooling can audit or display it.
type Action struct {
	Action                   ActionKind            `json:"action"`
	Item                     string                `json:"item"`
	Type                     providers.ContentType `json:"type"`
	Provider                 providers.Provider    `json:"provider"`
	Global                   bool                  `json:"global"`
	TargetPath               string                `json:"target_path,omitempty"`
	Reason                   string                `json:"reason"`
	SourceChecksum           string                `json:"source_checksum,omitempty"`
	RegisteredSourceChecksum string                `json:"registered_source_checksum,omitempty"`
	CurrentTargetChecksum    string                `json:"current_target_checksum,omitempty"`
	RegisteredTargetChecksum string                `json:"registered_target_checksum,omitempty"`
}

// Summary counts surviving actions per kind.
type Summary struct {
	Install  int `json:"install"`
	Update   int `json:"update"`
	Skip     int `json:"skip"`
	Conflict int `json:"conflict"`
	Delete   int `json:"delete"`
}

// Warning reports a manifest directive the reconciler refused to apply.
type Warning struct {
	Code    string `json:"code"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// WarnCodeDirectiveRejected marks a structurally unsafe rename or path
// migration directive that was excluded from the plan.
const WarnCodeDirectiveRejected = "DIRECTIVE_REJECTED"

// Plan is the reconciler's complete output.
type Plan struct {
	SchemaVersion int       `json:"schema_version"`
	Actions       []Action  `json:"actions"`
	Summary       Summary   `json:"summary"`
	HasConflicts  bool      `json:"has_conflicts"`
	Warnings      []Warning `json:"warnings,omitempty"`
}

// Input is everything reconciliation consumes, materialized up front.
type Input struct {
	// SourceItems is the ordered list of items the kit currently ships.
	SourceItems []SourceItemState
	// Providers is the deduplicated provider × scope set for this run.
	Providers []ProviderConfig
	// Registry is the persisted install record. Never nil after validation;
	// an empty registry means a first run.
	Registry *registry.Registry
	// TargetStates maps each registry-referenced path (normalized) to its
	// probed state. A path absent from the map could not be probed at all.
	TargetStates map[string]TargetFileState
	// Directives is the optional kit manifest. Nil when the kit ships none.
	Directives *manifest.Directives
	// CurrentVersion is the running tool version, for directive gating.
	CurrentVersion string
}

// Identity is the composite key one install record is canonical under.
// A struct key, not a joined string: item names may contain any separator
// a concatenated key would collide on.
type Identity struct {
	Item     string
	Type     providers.ContentType
	Provider providers.Provider
	Global   bool
}

// Identity returns the action's composite identity key.
func (a Action) Identity() Identity {
	return Identity{Item: a.Item, Type: a.Type, Provider: a.Provider, Global: a.Global}
}

func entryIdentity(e *registry.Entry) Identity {
	return Identity{Item: e.Item, Type: e.Type, Provider: e.Provider, Global: e.Global}
}
