package execute

import (
	"fmt"

	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/reconcile"
)

// Resolution is an explicit user decision for one conflict action.
type Resolution string

const (
	// ResolutionOverwrite replaces the target with the kit's content.
	ResolutionOverwrite Resolution = "overwrite-with-source"
	// ResolutionKeep leaves the target file as the user edited it and
	// re-baselines the registry so the conflict does not recur.
	ResolutionKeep Resolution = "keep-target"
	// ResolutionSmartMerge is accepted as input for forward compatibility
	// but has no merge implementation yet; validation rejects it.
	ResolutionSmartMerge Resolution = "smart-merge"
)

// ValidateResolutions checks that every conflict in the plan carries a
// usable resolution. One unresolved conflict blocks the entire run: a
// partially resolved plan is never executed.
func ValidateResolutions(plan *reconcile.Plan, resolutions map[reconcile.Identity]Resolution) error {
	for _, action := range plan.Actions {
		if action.Action != reconcile.ActionConflict {
			continue
		}
		resolution, ok := resolutions[action.Identity()]
		if !ok {
			return fmt.Errorf(messages.ResolutionMissingFmt, action.Item, action.Provider, action.Type)
		}
		switch resolution {
		case ResolutionOverwrite, ResolutionKeep:
		case ResolutionSmartMerge:
			return fmt.Errorf(messages.ResolutionUnmergedFmt, ResolutionOverwrite, ResolutionKeep, action.Item)
		default:
			return fmt.Errorf(messages.ResolutionInvalidFmt, resolution,
				ResolutionOverwrite, ResolutionKeep, ResolutionSmartMerge)
		}
	}
	return nil
}

// UniformResolutions resolves every conflict in the plan the same way,
// for the --overwrite and --keep fast paths.
func UniformResolutions(plan *reconcile.Plan, resolution Resolution) map[reconcile.Identity]Resolution {
	resolutions := make(map[reconcile.Identity]Resolution)
	for _, action := range plan.Actions {
		if action.Action == reconcile.ActionConflict {
			resolutions[action.Identity()] = resolution
		}
	}
	return resolutions
}
