package reconcile

import "github.com/mrgoonie/claudekit/internal/registry"

// Reconcile computes the action plan for the given snapshot of source,
// registry, and target state. It is deterministic: identical inputs always
// produce an identical plan, so the same call serves dry-run previews and
// real execution.
//
// Order of operations: manifest renames and path migrations run first and
// clear the identities they touch; the decision loop then evaluates every
// (source item, provider) pair, treating cleared identities as fresh
// installs; orphan detection sweeps the remaining registry rows; finally
// the list is deduplicated, delete-suppressed, and tallied.
func Reconcile(input Input) *Plan {
	if input.Registry == nil {
		input.Registry = &registry.Registry{SchemaVersion: registry.SchemaVersion}
	}

	directiveActions, cleared, warnings := applyDirectives(input)

	actions := make([]Action, 0, len(directiveActions)+len(input.SourceItems)*len(input.Providers))
	actions = append(actions, directiveActions...)

	for _, item := range input.SourceItems {
		for _, pc := range input.Providers {
			if !pc.Provider.Supports(item.Type) {
				continue
			}
			actions = append(actions, decide(input, item, pc, cleared))
		}
	}

	actions = append(actions, detectOrphans(input, cleared)...)
	actions = dedupe(actions)

	plan := &Plan{
		SchemaVersion: PlanSchemaVersion,
		Actions:       actions,
		Warnings:      warnings,
	}
	for _, action := range actions {
		switch action.Action {
		case ActionInstall:
			plan.Summary.Install++
		case ActionUpdate:
			plan.Summary.Update++
		case ActionSkip:
			plan.Summary.Skip++
		case ActionConflict:
			plan.Summary.Conflict++
		case ActionDelete:
			plan.Summary.Delete++
		}
	}
	plan.HasConflicts = plan.Summary.Conflict > 0
	return plan
}
