package reconcile

import (
	"fmt"

	"github.com/mrgoonie/claudekit/internal/manifest"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/pathutil"
)

// applyDirectives runs manifest renames and provider path migrations ahead
// of the main decision loop. Matching registry rows get a delete action, and
// their identities are marked cleared so the main loop re-evaluates them as
// fresh installs instead of matching the stale row.
func applyDirectives(input Input) (actions []Action, cleared map[Identity]bool, warnings []Warning) {
	cleared = make(map[Identity]bool)
	if input.Directives == nil {
		return nil, cleared, nil
	}
	applied := input.Registry.AppliedManifestVersion

	for _, rename := range input.Directives.Renames {
		if !manifest.Applicable(rename.SinceVersion, applied, input.CurrentVersion) {
			continue
		}
		subject := rename.From + " -> " + rename.To
		if warning, ok := rejectDirectivePath("rename", subject, rename.From, rename.To); !ok {
			warnings = append(warnings, warning)
			continue
		}
		for i := range input.Registry.Installations {
			entry := &input.Registry.Installations[i]
			if !pathutil.Equal(entry.SourcePath, rename.From) {
				continue
			}
			actions = append(actions, Action{
				Action:                   ActionDelete,
				Item:                     entry.Item,
				Type:                     entry.Type,
				Provider:                 entry.Provider,
				Global:                   entry.Global,
				TargetPath:               entry.Path,
				Reason:                   fmt.Sprintf(messages.ReasonRenamedFmt, rename.From, rename.To),
				RegisteredSourceChecksum: entry.SourceChecksum,
				RegisteredTargetChecksum: entry.TargetChecksum,
			})
			cleared[entryIdentity(entry)] = true
		}
	}

	for _, migration := range input.Directives.ProviderPathMigrations {
		if !manifest.Applicable(migration.SinceVersion, applied, input.CurrentVersion) {
			continue
		}
		subject := fmt.Sprintf("%s/%s %s -> %s", migration.Provider, migration.Type, migration.From, migration.To)
		if warning, ok := rejectDirectivePath("path migration", subject, migration.From, migration.To); !ok {
			warnings = append(warnings, warning)
			continue
		}
		for i := range input.Registry.Installations {
			entry := &input.Registry.Installations[i]
			if entry.Provider != migration.Provider || entry.Type != migration.Type {
				continue
			}
			if !pathutil.ContainsSegments(entry.Path, migration.From) {
				continue
			}
			actions = append(actions, Action{
				Action:                   ActionDelete,
				Item:                     entry.Item,
				Type:                     entry.Type,
				Provider:                 entry.Provider,
				Global:                   entry.Global,
				TargetPath:               entry.Path,
				Reason:                   fmt.Sprintf(messages.ReasonPathMigratedFmt, migration.From, migration.To),
				RegisteredSourceChecksum: entry.SourceChecksum,
				RegisteredTargetChecksum: entry.TargetChecksum,
			})
			cleared[entryIdentity(entry)] = true
		}
	}

	return actions, cleared, warnings
}

// rejectDirectivePath validates both endpoints of a directive. The manifest
// schema should never let these through; this is the last line of defense
// against a directive that could reach outside the managed tree. Returns
// ok=false with a warning when the directive must be skipped.
func rejectDirectivePath(kind, subject string, paths ...string) (Warning, bool) {
	for _, path := range paths {
		if path == "" {
			return directiveWarning(subject, messages.WarnDirectivePathEmptyFmt, kind), false
		}
		if pathutil.IsAbsolute(path) {
			return directiveWarning(subject, messages.WarnDirectivePathAbsoluteFmt, kind, path), false
		}
		if pathutil.HasParentSegment(path) {
			return directiveWarning(subject, messages.WarnDirectivePathTraversalFmt, kind, path), false
		}
	}
	return Warning{}, true
}

func directiveWarning(subject, format string, args ...any) Warning {
	return Warning{
		Code:    WarnCodeDirectiveRejected,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}
