package reconcile

import (
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/registry"
)

// detectOrphans finds registry entries the kit no longer ships and emits
// deletes for them. handled holds identities already claimed by rename or
// migration processing this run.
//
// Exclusions:
//   - entries outside the active provider × scope set: another scope's
//     installs are not this run's business
//   - manual installs: the user put them there, not ck
//   - skills: discovered from the filesystem, not manifest-tracked, so
//     absence from the source item list is not meaningful
//   - config when this run ships any config item: config is a scope
//     singleton, a differing item name is not an orphan
func detectOrphans(input Input, handled map[Identity]bool) []Action {
	active := make(map[scopeKey]bool, len(input.Providers))
	for _, pc := range input.Providers {
		active[scopeKey{provider: pc.Provider, global: pc.Global}] = true
	}

	sourceItems := make(map[itemKey]bool, len(input.SourceItems))
	hasConfigSource := false
	for _, item := range input.SourceItems {
		sourceItems[itemKey{item: item.Item, contentType: item.Type}] = true
		if item.Type == providers.TypeConfig {
			hasConfigSource = true
		}
	}

	var actions []Action
	for i := range input.Registry.Installations {
		entry := &input.Registry.Installations[i]
		if !active[scopeKey{provider: entry.Provider, global: entry.Global}] {
			continue
		}
		if handled[entryIdentity(entry)] {
			continue
		}
		if entry.InstallSource == registry.InstallSourceManual {
			continue
		}
		if entry.Type == providers.TypeSkill {
			continue
		}
		if entry.Type == providers.TypeConfig && hasConfigSource {
			continue
		}
		if sourceItems[itemKey{item: entry.Item, contentType: entry.Type}] {
			continue
		}
		actions = append(actions, Action{
			Action:                   ActionDelete,
			Item:                     entry.Item,
			Type:                     entry.Type,
			Provider:                 entry.Provider,
			Global:                   entry.Global,
			TargetPath:               entry.Path,
			Reason:                   messages.ReasonOrphaned,
			RegisteredSourceChecksum: entry.SourceChecksum,
			RegisteredTargetChecksum: entry.TargetChecksum,
		})
	}
	return actions
}

type scopeKey struct {
	provider providers.Provider
	global   bool
}

type itemKey struct {
	item        string
	contentType providers.ContentType
}
