// Package execute carries out a reconcile plan: it writes and deletes the
// files the plan names, then updates the registry to match. The reconciler
// decided everything; this layer only performs, and it refuses to start
// while any conflict lacks an explicit resolution.
package execute

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mrgoonie/claudekit/internal/checksum"
	"github.com/mrgoonie/claudekit/internal/kit"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/reconcile"
	"github.com/mrgoonie/claudekit/internal/registry"
)

// Options configures one plan execution.
type Options struct {
	System System
	// Items is the scanned kit content; converted bytes are written as-is.
	Items []kit.Item
	// Registry is mutated to match what was executed and saved to
	// RegistryPath afterwards.
	Registry     *registry.Registry
	RegistryPath string
	// ManifestVersion, when set, is recorded as applied after a successful
	// run so version-gated directives fire exactly once.
	ManifestVersion string
	// Resolutions must cover every conflict in the plan.
	Resolutions map[reconcile.Identity]Resolution
}

// Result summarizes what execution did.
type Result struct {
	Written         int
	Deleted         int
	RegistryUpdates int
	// Unavailable counts installs that could not be performed because the
	// provider conversion failed during scanning. They stay unregistered
	// and are retried next run.
	Unavailable int
}

// Apply executes the plan. The caller holds the sync lock.
func Apply(plan *reconcile.Plan, opts Options) (*Result, error) {
	if opts.System == nil {
		return nil, fmt.Errorf(messages.ExecuteSystemRequired)
	}
	if plan == nil {
		return nil, fmt.Errorf(messages.ExecutePlanRequired)
	}
	if err := ValidateResolutions(plan, opts.Resolutions); err != nil {
		return nil, err
	}
	reg := opts.Registry
	if reg == nil {
		reg = &registry.Registry{}
	}

	content := kit.ContentIndex(opts.Items)
	sourcePaths := make(map[reconcile.Identity]string, len(opts.Items))
	for _, item := range opts.Items {
		sourcePaths[reconcile.Identity{Item: item.State.Item, Type: item.State.Type}] = item.State.SourcePath
	}

	result := &Result{}
	for _, action := range plan.Actions {
		var err error
		switch action.Action {
		case reconcile.ActionInstall, reconcile.ActionUpdate:
			err = install(opts.System, reg, action, content, sourcePaths, result)
		case reconcile.ActionConflict:
			switch opts.Resolutions[action.Identity()] {
			case ResolutionOverwrite:
				err = install(opts.System, reg, action, content, sourcePaths, result)
			case ResolutionKeep:
				keepTarget(reg, action, result)
			case ResolutionSmartMerge:
				// Unreachable: validation rejected it above.
			}
		case reconcile.ActionSkip:
			if action.Reason == messages.ReasonRegistryBootstrap {
				bootstrapChecksums(reg, action, result)
			}
		case reconcile.ActionDelete:
			err = remove(opts.System, reg, action, result)
		}
		if err != nil {
			return result, err
		}
	}

	if opts.ManifestVersion != "" {
		reg.AppliedManifestVersion = opts.ManifestVersion
	}
	if opts.RegistryPath != "" {
		if err := registry.Save(opts.System, opts.RegistryPath, reg); err != nil {
			return result, fmt.Errorf(messages.ExecuteRegistrySaveFmt, err)
		}
	}
	return result, nil
}

func install(sys System, reg *registry.Registry, action reconcile.Action,
	content map[reconcile.Identity]map[providers.Provider][]byte,
	sourcePaths map[reconcile.Identity]string, result *Result) error {

	contentKey := reconcile.Identity{Item: action.Item, Type: action.Type}
	data, ok := content[contentKey][action.Provider]
	if !ok {
		result.Unavailable++
		return nil
	}
	if err := sys.MkdirAll(filepath.Dir(action.TargetPath), 0o755); err != nil {
		return fmt.Errorf(messages.ExecuteWriteFmt, action.TargetPath, err)
	}
	if err := sys.WriteFileAtomic(action.TargetPath, data, 0o644); err != nil {
		return fmt.Errorf(messages.ExecuteWriteFmt, action.TargetPath, err)
	}
	// Config is a scope singleton: displace any row recorded under a
	// different item name before registering this one.
	if action.Type == providers.TypeConfig {
		if prior := reg.Find(action.Item, action.Type, action.Provider, action.Global); prior != nil && prior.Item != action.Item {
			reg.Remove(prior.Item, prior.Type, prior.Provider, prior.Global)
		}
	}
	reg.Upsert(registry.Entry{
		Item:           action.Item,
		Type:           action.Type,
		Provider:       action.Provider,
		Global:         action.Global,
		Path:           action.TargetPath,
		SourceChecksum: action.SourceChecksum,
		TargetChecksum: checksum.Compute(data),
		SourcePath:     sourcePaths[contentKey],
		InstallSource:  registry.InstallSourceCK,
	})
	result.Written++
	result.RegistryUpdates++
	return nil
}

// keepTarget resolves a conflict in the user's favor: the file stays, and
// the registry re-baselines on the current state so the same divergence is
// not reported again next run.
func keepTarget(reg *registry.Registry, action reconcile.Action, result *Result) {
	entry := reg.Find(action.Item, action.Type, action.Provider, action.Global)
	if entry == nil {
		return
	}
	entry.SourceChecksum = action.SourceChecksum
	if checksum.Known(action.CurrentTargetChecksum) {
		entry.TargetChecksum = action.CurrentTargetChecksum
	}
	result.RegistryUpdates++
}

// bootstrapChecksums persists the freshly computed checksums for an entry
// migrated from the pre-checksum registry schema. No file is touched.
func bootstrapChecksums(reg *registry.Registry, action reconcile.Action, result *Result) {
	entry := reg.Find(action.Item, action.Type, action.Provider, action.Global)
	if entry == nil {
		return
	}
	entry.SourceChecksum = action.SourceChecksum
	if checksum.Known(action.CurrentTargetChecksum) {
		entry.TargetChecksum = action.CurrentTargetChecksum
	}
	result.RegistryUpdates++
}

func remove(sys System, reg *registry.Registry, action reconcile.Action, result *Result) error {
	if err := sys.Remove(action.TargetPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(messages.ExecuteDeleteFmt, action.TargetPath, err)
	}
	if reg.Remove(action.Item, action.Type, action.Provider, action.Global) {
		result.RegistryUpdates++
	}
	result.Deleted++
	return nil
}
