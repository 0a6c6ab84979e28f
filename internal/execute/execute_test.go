package execute

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrgoonie/claudekit/internal/checksum"
	"github.com/mrgoonie/claudekit/internal/kit"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/reconcile"
	"github.com/mrgoonie/claudekit/internal/registry"
)

func planItem(content string) kit.Item {
	data := []byte(content)
	return kit.Item{
		State: reconcile.SourceItemState{
			Item:           "plan",
			Type:           providers.TypeAgent,
			SourcePath:     "agents/plan.md",
			SourceChecksum: checksum.Compute(data),
			ConvertedChecksums: map[providers.Provider]string{
				providers.Claude: checksum.Compute(data),
			},
		},
		Converted: map[providers.Provider][]byte{
			providers.Claude: data,
		},
	}
}

func installAction(path, sum string) reconcile.Action {
	return reconcile.Action{
		Action: reconcile.ActionInstall, Item: "plan", Type: providers.TypeAgent,
		Provider: providers.Claude, TargetPath: path,
		Reason: messages.ReasonNewItem, SourceChecksum: sum,
	}
}

func TestApplyInstallWritesAndRegisters(t *testing.T) {
	dir := t.TempDir()
	item := planItem("# Plan agent\n")
	targetPath := filepath.Join(dir, ".claude", "agents", "plan.md")
	regPath := filepath.Join(dir, ".claudekit", "registry.json")
	plan := &reconcile.Plan{Actions: []reconcile.Action{
		installAction(targetPath, item.State.SourceChecksum),
	}}

	result, err := Apply(plan, Options{
		System:       RealSystem{},
		Items:        []kit.Item{item},
		Registry:     &registry.Registry{},
		RegistryPath: regPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, result.RegistryUpdates)

	written, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "# Plan agent\n", string(written))

	saved, err := registry.Load(registry.RealSystem{}, regPath)
	require.NoError(t, err)
	require.Len(t, saved.Installations, 1)
	entry := saved.Installations[0]
	assert.Equal(t, "plan", entry.Item)
	assert.Equal(t, targetPath, entry.Path)
	assert.Equal(t, checksum.Compute(written), entry.TargetChecksum)
	assert.Equal(t, "agents/plan.md", entry.SourcePath)
	assert.Equal(t, registry.InstallSourceCK, entry.InstallSource)
}

func TestApplyRefusesUnresolvedConflict(t *testing.T) {
	plan := &reconcile.Plan{Actions: []reconcile.Action{{
		Action: reconcile.ActionConflict, Item: "plan", Type: providers.TypeAgent,
		Provider: providers.Claude, Reason: messages.ReasonBothModified,
	}}}
	_, err := Apply(plan, Options{System: RealSystem{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no resolution")
}

func TestApplyRejectsSmartMerge(t *testing.T) {
	plan := &reconcile.Plan{Actions: []reconcile.Action{{
		Action: reconcile.ActionConflict, Item: "plan", Type: providers.TypeAgent,
		Provider: providers.Claude,
	}}}
	_, err := Apply(plan, Options{
		System: RealSystem{},
		Resolutions: map[reconcile.Identity]Resolution{
			plan.Actions[0].Identity(): ResolutionSmartMerge,
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smart-merge is not yet supported")
}

func TestApplyConflictOverwrite(t *testing.T) {
	dir := t.TempDir()
	item := planItem("# New plan\n")
	targetPath := filepath.Join(dir, "plan.md")
	require.NoError(t, os.WriteFile(targetPath, []byte("user edits\n"), 0o644))
	conflict := reconcile.Action{
		Action: reconcile.ActionConflict, Item: "plan", Type: providers.TypeAgent,
		Provider: providers.Claude, TargetPath: targetPath,
		SourceChecksum: item.State.SourceChecksum,
	}
	reg := &registry.Registry{Installations: []registry.Entry{{
		Item: "plan", Type: providers.TypeAgent, Provider: providers.Claude,
		Path: targetPath, SourceChecksum: "old", TargetChecksum: "old-target",
	}}}
	result, err := Apply(&reconcile.Plan{Actions: []reconcile.Action{conflict}}, Options{
		System: RealSystem{}, Items: []kit.Item{item}, Registry: reg,
		Resolutions: map[reconcile.Identity]Resolution{conflict.Identity(): ResolutionOverwrite},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)
	written, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "# New plan\n", string(written))
}

func TestApplyConflictKeepRebaselines(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "plan.md")
	require.NoError(t, os.WriteFile(targetPath, []byte("user edits\n"), 0o644))
	userSum := checksum.Compute([]byte("user edits\n"))
	conflict := reconcile.Action{
		Action: reconcile.ActionConflict, Item: "plan", Type: providers.TypeAgent,
		Provider: providers.Claude, TargetPath: targetPath,
		SourceChecksum: "new-source", CurrentTargetChecksum: userSum,
	}
	reg := &registry.Registry{Installations: []registry.Entry{{
		Item: "plan", Type: providers.TypeAgent, Provider: providers.Claude,
		Path: targetPath, SourceChecksum: "old", TargetChecksum: "old-target",
	}}}
	result, err := Apply(&reconcile.Plan{Actions: []reconcile.Action{conflict}}, Options{
		System: RealSystem{}, Registry: reg,
		Resolutions: map[reconcile.Identity]Resolution{conflict.Identity(): ResolutionKeep},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Written)
	assert.Equal(t, 1, result.RegistryUpdates)
	// File untouched.
	data, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "user edits\n", string(data))
	// Registry re-baselined on the kept content.
	assert.Equal(t, "new-source", reg.Installations[0].SourceChecksum)
	assert.Equal(t, userSum, reg.Installations[0].TargetChecksum)
}

func TestApplyDelete(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "old.md")
	require.NoError(t, os.WriteFile(targetPath, []byte("x"), 0o644))
	reg := &registry.Registry{Installations: []registry.Entry{{
		Item: "old", Type: providers.TypeAgent, Provider: providers.Claude, Path: targetPath,
	}}}
	deleteAction := reconcile.Action{
		Action: reconcile.ActionDelete, Item: "old", Type: providers.TypeAgent,
		Provider: providers.Claude, TargetPath: targetPath, Reason: messages.ReasonOrphaned,
	}
	result, err := Apply(&reconcile.Plan{Actions: []reconcile.Action{deleteAction}}, Options{
		System: RealSystem{}, Registry: reg,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.NoFileExists(t, targetPath)
	assert.Empty(t, reg.Installations)

	// Deleting an already-missing file is not an error.
	reg2 := &registry.Registry{Installations: []registry.Entry{{
		Item: "old", Type: providers.TypeAgent, Provider: providers.Claude, Path: targetPath,
	}}}
	_, err = Apply(&reconcile.Plan{Actions: []reconcile.Action{deleteAction}}, Options{
		System: RealSystem{}, Registry: reg2,
	})
	require.NoError(t, err)
}

func TestApplyBootstrapPersistsChecksums(t *testing.T) {
	reg := &registry.Registry{Installations: []registry.Entry{{
		Item: "plan", Type: providers.TypeAgent, Provider: providers.Claude, Path: "p",
	}}}
	skip := reconcile.Action{
		Action: reconcile.ActionSkip, Item: "plan", Type: providers.TypeAgent,
		Provider: providers.Claude, TargetPath: "p",
		Reason:         messages.ReasonRegistryBootstrap,
		SourceChecksum: "fresh", CurrentTargetChecksum: "probed",
	}
	result, err := Apply(&reconcile.Plan{Actions: []reconcile.Action{skip}}, Options{
		System: RealSystem{}, Registry: reg,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Written)
	assert.Equal(t, 1, result.RegistryUpdates)
	assert.Equal(t, "fresh", reg.Installations[0].SourceChecksum)
	assert.Equal(t, "probed", reg.Installations[0].TargetChecksum)
}

func TestApplyOrdinarySkipTouchesNothing(t *testing.T) {
	reg := &registry.Registry{Installations: []registry.Entry{{
		Item: "plan", Type: providers.TypeAgent, Provider: providers.Claude,
		Path: "p", SourceChecksum: "A", TargetChecksum: "B",
	}}}
	skip := reconcile.Action{
		Action: reconcile.ActionSkip, Item: "plan", Type: providers.TypeAgent,
		Provider: providers.Claude, Reason: messages.ReasonNoChanges,
	}
	result, err := Apply(&reconcile.Plan{Actions: []reconcile.Action{skip}}, Options{
		System: RealSystem{}, Registry: reg,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.RegistryUpdates)
	assert.Equal(t, "A", reg.Installations[0].SourceChecksum)
}

func TestApplyRecordsManifestVersion(t *testing.T) {
	dir := t.TempDir()
	regPath := filepath.Join(dir, "registry.json")
	reg := &registry.Registry{}
	_, err := Apply(&reconcile.Plan{}, Options{
		System: RealSystem{}, Registry: reg, RegistryPath: regPath, ManifestVersion: "1.4.0",
	})
	require.NoError(t, err)
	saved, err := registry.Load(registry.RealSystem{}, regPath)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", saved.AppliedManifestVersion)
}

func TestApplyUnavailableContent(t *testing.T) {
	// Install decided while the provider conversion failed: no bytes to
	// write, so the item stays unregistered for a retry next run.
	action := installAction(filepath.Join(t.TempDir(), "x.md"), checksum.Unknown)
	reg := &registry.Registry{}
	result, err := Apply(&reconcile.Plan{Actions: []reconcile.Action{action}}, Options{
		System: RealSystem{}, Registry: reg,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Unavailable)
	assert.Equal(t, 0, result.Written)
	assert.Empty(t, reg.Installations)
}

func TestUniformResolutions(t *testing.T) {
	plan := &reconcile.Plan{Actions: []reconcile.Action{
		{Action: reconcile.ActionConflict, Item: "a", Type: providers.TypeAgent, Provider: providers.Claude},
		{Action: reconcile.ActionSkip, Item: "b", Type: providers.TypeAgent, Provider: providers.Claude},
		{Action: reconcile.ActionConflict, Item: "c", Type: providers.TypeAgent, Provider: providers.Claude},
	}}
	resolutions := UniformResolutions(plan, ResolutionKeep)
	assert.Len(t, resolutions, 2)
	require.NoError(t, ValidateResolutions(plan, resolutions))
}

func TestConflictDiffTruncation(t *testing.T) {
	current := strings.Repeat("old line\n", 100)
	incoming := strings.Repeat("new line\n", 100)
	diff := ConflictDiff("x.md", []byte(current), []byte(incoming), 10)
	assert.Contains(t, diff, "diff truncated to 10 lines")
	assert.LessOrEqual(t, len(strings.Split(diff, "\n")), 13)

	// Identical content yields no diff.
	assert.Empty(t, ConflictDiff("x.md", []byte("same\n"), []byte("same\n"), 10))
}
