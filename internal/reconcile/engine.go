package reconcile

import (
	"github.com/mrgoonie/claudekit/internal/checksum"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/pathutil"
	"github.com/mrgoonie/claudekit/internal/registry"
)

// targetChange classifies what happened to the installed file since the
// registry last recorded it.
type targetChange int

const (
	targetUnchanged targetChange = iota
	targetChanged
	targetDeleted
	targetUnknown
)

// decide produces the single action for one (source item, provider config)
// pair. cleared holds identities whose registry rows were invalidated by
// rename or migration processing this run; they are treated as unregistered
// so the stale row cannot resurrect old state.
func decide(input Input, item SourceItemState, pc ProviderConfig, cleared map[Identity]bool) Action {
	id := Identity{Item: item.Item, Type: item.Type, Provider: pc.Provider, Global: pc.Global}

	var entry *registry.Entry
	if !cleared[id] {
		entry = input.Registry.Find(item.Item, item.Type, pc.Provider, pc.Global)
		// The config-singleton fallback can surface a row recorded under a
		// different item name. If that row's identity was cleared this run,
		// its delete is already planned and matching it would resurrect
		// stale state at a path about to disappear.
		if entry != nil && cleared[entryIdentity(entry)] {
			entry = nil
		}
	}

	action := Action{
		Item:           item.Item,
		Type:           item.Type,
		Provider:       pc.Provider,
		Global:         pc.Global,
		SourceChecksum: item.ConvertedChecksums[pc.Provider],
	}
	if entry != nil {
		action.TargetPath = entry.Path
		action.RegisteredSourceChecksum = entry.SourceChecksum
		action.RegisteredTargetChecksum = entry.TargetChecksum
	} else if path, err := pc.Provider.InstallPath(pc.Root, item.Type, item.Item); err == nil {
		action.TargetPath = path
	}

	// An unavailable provider checksum means nothing can be verified. The
	// only safe moves are a fresh install (nothing existing is touched) or
	// leaving a registered install exactly as it is.
	converted := item.ConvertedChecksums[pc.Provider]
	if !checksum.Known(converted) {
		if entry != nil {
			action.Action = ActionSkip
			action.Reason = messages.ReasonChecksumUnavailable
			return action
		}
		action.Action = ActionInstall
		action.Reason = installReason(input.Registry, item, pc, cleared)
		return action
	}

	if entry == nil {
		action.Action = ActionInstall
		action.Reason = installReason(input.Registry, item, pc, cleared)
		return action
	}

	// A registered entry without a usable source checksum is the first run
	// after a registry schema upgrade: the caller persists the fresh
	// checksums without writing any file. The probed target checksum rides
	// along so the baseline is complete after one run.
	if !checksum.Known(entry.SourceChecksum) {
		if state, ok := input.TargetStates[pathutil.Normalize(entry.Path)]; ok && state.Exists {
			action.CurrentTargetChecksum = state.CurrentChecksum
		}
		action.Action = ActionSkip
		action.Reason = messages.ReasonRegistryBootstrap
		return action
	}

	sourceChanged := !checksum.Equal(converted, entry.SourceChecksum)
	change, current := classifyTarget(input.TargetStates, entry)
	action.CurrentTargetChecksum = current

	switch change {
	case targetDeleted:
		if sourceChanged {
			action.Action = ActionInstall
			action.Reason = messages.ReasonDeletedSourceChanged
		} else {
			action.Action = ActionSkip
			action.Reason = messages.ReasonDeletedSourceUnchanged
		}
	case targetUnknown:
		if sourceChanged {
			action.Action = ActionConflict
			action.Reason = messages.ReasonUnknownSourceChanged
		} else {
			action.Action = ActionSkip
			action.Reason = messages.ReasonUnknownSourceUnchanged
		}
	case targetUnchanged:
		if sourceChanged {
			action.Action = ActionUpdate
			action.Reason = messages.ReasonSafeUpdate
		} else {
			action.Action = ActionSkip
			action.Reason = messages.ReasonNoChanges
		}
	case targetChanged:
		if sourceChanged {
			action.Action = ActionConflict
			action.Reason = messages.ReasonBothModified
		} else {
			action.Action = ActionSkip
			action.Reason = messages.ReasonUserEdited
		}
	}
	return action
}

// installReason distinguishes a brand-new item from a known item reaching a
// provider for the first time. Only rows under another provider count, and
// rows cleared by directive processing do not: their registry state is
// already scheduled for deletion this run.
func installReason(reg *registry.Registry, item SourceItemState, pc ProviderConfig, cleared map[Identity]bool) string {
	for i := range reg.Installations {
		e := &reg.Installations[i]
		if e.Item != item.Item || e.Type != item.Type {
			continue
		}
		if e.Provider == pc.Provider {
			continue
		}
		if cleared[entryIdentity(e)] {
			continue
		}
		return messages.ReasonNewProvider
	}
	return messages.ReasonNewItem
}

// classifyTarget derives the target change state for a registered install,
// plus the probed checksum for audit. A path missing from the probe map
// means existence could not be determined, which is unknown, not deleted.
func classifyTarget(states map[string]TargetFileState, entry *registry.Entry) (targetChange, string) {
	state, ok := states[pathutil.Normalize(entry.Path)]
	if !ok {
		return targetUnknown, ""
	}
	if !state.Exists {
		return targetDeleted, ""
	}
	if !checksum.Known(state.CurrentChecksum) || !checksum.Known(entry.TargetChecksum) {
		return targetUnknown, state.CurrentChecksum
	}
	if checksum.Equal(state.CurrentChecksum, entry.TargetChecksum) {
		return targetUnchanged, state.CurrentChecksum
	}
	return targetChanged, state.CurrentChecksum
}
