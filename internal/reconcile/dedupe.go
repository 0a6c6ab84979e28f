package reconcile

import "github.com/mrgoonie/claudekit/internal/pathutil"

// dedupe normalizes the raw action list in two passes.
//
// Pass one collapses exact duplicates: the same action kind for the same
// identity at the same normalized path, keeping the first occurrence. A
// rename and a path migration can legitimately both claim the same row.
//
// Pass two suppresses overlap with deletes: when an identity carries a
// delete, any skip, update, or conflict for that identity describes a file
// that will not exist and is dropped. An install alongside a delete stays:
// that is the cleared-and-retargeted case, where the old location is
// removed and the item is freshly installed at its new one.
func dedupe(actions []Action) []Action {
	type dupKey struct {
		kind ActionKind
		id   Identity
		path string
	}
	seen := make(map[dupKey]bool, len(actions))
	unique := make([]Action, 0, len(actions))
	for _, action := range actions {
		key := dupKey{kind: action.Action, id: action.Identity(), path: pathutil.Normalize(action.TargetPath)}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, action)
	}

	deleted := make(map[Identity]bool)
	for _, action := range unique {
		if action.Action == ActionDelete {
			deleted[action.Identity()] = true
		}
	}
	if len(deleted) == 0 {
		return unique
	}

	result := make([]Action, 0, len(unique))
	for _, action := range unique {
		if deleted[action.Identity()] {
			switch action.Action {
			case ActionDelete, ActionInstall:
			case ActionSkip, ActionUpdate, ActionConflict:
				continue
			}
		}
		result = append(result, action)
	}
	return result
}
