package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/mrgoonie/claudekit/internal/manifest"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/registry"
)

// fullInput exercises directives, the decision loop, and orphan detection
// in one run.
func fullInput() Input {
	planItem := agentItem("plan", "C")
	reviewItem := agentItem("review", "R")
	reg := &registry.Registry{
		AppliedManifestVersion: "1.2.0",
		Installations: []registry.Entry{
			planEntry("A", "B"),
			{Item: "review", Type: providers.TypeAgent, Provider: providers.Claude,
				Path: ".claude/agents/review.md", SourceChecksum: "R", TargetChecksum: "RT",
				SourcePath: "agents/review.md", InstallSource: registry.InstallSourceCK},
			{Item: "retired", Type: providers.TypeAgent, Provider: providers.Claude,
				Path: ".claude/agents/retired.md", SourceChecksum: "X", TargetChecksum: "Y",
				SourcePath: "agents/retired.md", InstallSource: registry.InstallSourceCK},
		},
	}
	return Input{
		SourceItems: []SourceItemState{planItem, reviewItem},
		Providers:   []ProviderConfig{claudeLocal()},
		Registry:    reg,
		TargetStates: map[string]TargetFileState{
			".claude/agents/plan.md":   {Path: ".claude/agents/plan.md", Exists: true, CurrentChecksum: "B"},
			".claude/agents/review.md": {Path: ".claude/agents/review.md", Exists: true, CurrentChecksum: "edited"},
		},
		CurrentVersion: "1.4.0",
		Directives:     &manifest.Directives{},
	}
}

func TestReconcileFullRun(t *testing.T) {
	plan := Reconcile(fullInput())
	want := Summary{Update: 1, Skip: 1, Delete: 1}
	if plan.Summary != want {
		t.Fatalf("summary = %+v, want %+v\nactions: %+v", plan.Summary, want, plan.Actions)
	}
	if plan.HasConflicts {
		t.Fatal("no conflict expected")
	}
	if plan.SchemaVersion != PlanSchemaVersion {
		t.Fatalf("schema version = %d", plan.SchemaVersion)
	}
}

func TestReconcileHasConflictsFlag(t *testing.T) {
	input := fullInput()
	// Drift the plan target so source and target both changed.
	input.TargetStates[".claude/agents/plan.md"] = TargetFileState{
		Path: ".claude/agents/plan.md", Exists: true, CurrentChecksum: "drifted",
	}
	plan := Reconcile(input)
	if plan.Summary.Conflict != 1 || !plan.HasConflicts {
		t.Fatalf("expected a flagged conflict: %+v", plan.Summary)
	}
}

// Idempotence: identical inputs yield byte-for-byte identical plans.
func TestReconcileIsDeterministic(t *testing.T) {
	first, err := json.Marshal(Reconcile(fullInput()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := json.Marshal(Reconcile(fullInput()))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(first) != string(next) {
			t.Fatalf("plans diverged between runs:\n%s\n%s", first, next)
		}
	}
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	input := fullInput()
	before, err := json.Marshal(input.Registry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	_ = Reconcile(input)
	after, err := json.Marshal(input.Registry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("reconcile mutated the registry snapshot")
	}
}

func TestReconcileNilRegistry(t *testing.T) {
	plan := Reconcile(Input{
		SourceItems: []SourceItemState{agentItem("plan", "A")},
		Providers:   []ProviderConfig{claudeLocal()},
	})
	if plan.Summary.Install != 1 {
		t.Fatalf("nil registry is a first run: %+v", plan.Summary)
	}
}

func TestReconcileSkipsUnsupportedPairs(t *testing.T) {
	// A skill item against a provider without skill support produces no
	// action at all, not an install attempt.
	skill := SourceItemState{
		Item: "review", Type: providers.TypeSkill, SourcePath: "skills/review/SKILL.md",
		SourceChecksum:     "S",
		ConvertedChecksums: map[providers.Provider]string{providers.Claude: "S"},
	}
	plan := Reconcile(Input{
		SourceItems: []SourceItemState{skill},
		Providers: []ProviderConfig{
			{Provider: providers.Gemini, Root: "/project"},
		},
		Registry: &registry.Registry{},
	})
	if len(plan.Actions) != 0 {
		t.Fatalf("unsupported provider/type pair must produce nothing: %+v", plan.Actions)
	}
}

func TestReconcileMultiProviderFanout(t *testing.T) {
	rules := SourceItemState{
		Item: "style", Type: providers.TypeRules, SourcePath: "rules/style.md",
		SourceChecksum: "S",
		ConvertedChecksums: map[providers.Provider]string{
			providers.Claude:   "S1",
			providers.Cursor:   "S2",
			providers.Windsurf: "S3",
		},
	}
	plan := Reconcile(Input{
		SourceItems: []SourceItemState{rules},
		Providers: []ProviderConfig{
			{Provider: providers.Claude, Root: "/project"},
			{Provider: providers.Cursor, Root: "/project"},
			{Provider: providers.Windsurf, Root: "/project"},
		},
		Registry: &registry.Registry{},
	})
	if plan.Summary.Install != 3 {
		t.Fatalf("expected one install per provider, got %+v", plan.Summary)
	}
	paths := make(map[string]bool)
	for _, action := range plan.Actions {
		paths[action.TargetPath] = true
	}
	if len(paths) != 3 {
		t.Fatalf("each provider must target its own path: %+v", paths)
	}
}
