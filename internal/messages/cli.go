package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "ck"
	// RootShort is the short description for the root command.
	RootShort = "ClaudeKit CLI"

	// VersionTemplate renders `ck --version` output.
	VersionTemplate   = "{{.Version}}\n"
	VersionInvalidFmt = "version %q must be in the form vX.Y.Z or X.Y.Z"

	// SyncUse is the sync command name.
	SyncUse   = "sync"
	SyncShort = "Install or update kit content for the configured providers"

	SyncFlagDryRun = "Show the plan without writing anything"
	SyncFlagGlobal = "Sync user-wide install locations instead of the project"
	SyncFlagJSON   = "Emit the plan as JSON"
	SyncFlagYes    = "Resolve all conflicts by overwriting with kit content"
	SyncFlagKeep   = "Resolve all conflicts by keeping the target file"

	// StatusUse is the status command name.
	StatusUse   = "status"
	StatusShort = "Preview what sync would do, without taking the lock"

	SyncNothingToDo      = "Everything is up to date."
	SyncResolutionFlags  = "--overwrite and --keep are mutually exclusive"
	SyncConflictsBlocked = "unresolved conflicts: re-run with --overwrite or --keep, or resolve interactively"
	SyncPlanHeaderFmt    = "Plan: %d install, %d update, %d skip, %d conflict, %d delete\n"
	SyncAppliedFmt       = "Applied: %d written, %d deleted, %d registry updates\n"
	SyncDryRunNote       = "Dry run: nothing was written.\n"

	SyncActionLineFmt = "  %-8s %-8s %-24s %s\n"

	// PromptConflictTitleFmt titles the per-conflict resolution form.
	PromptConflictTitleFmt     = "Conflict: %s (%s/%s)"
	PromptConflictDescription  = "Both the kit and this file changed since the last sync."
	PromptOptionOverwrite      = "Overwrite with kit version"
	PromptOptionKeep           = "Keep my version"
	PromptOptionMerge          = "Smart merge (not yet supported)"
	PromptNoTerminal           = "conflicts require an interactive terminal; re-run with --overwrite or --keep"
	PromptDiffTruncatedNoteFmt = "... diff truncated to %d lines\n"
)

// Root and config errors.
const (
	ConfigMissingFileFmt   = "missing config file %s: %w"
	ConfigInvalidFmt       = "invalid config %s: %w"
	ConfigFSRequired       = "config filesystem is required"
	ConfigRootRequired     = "config root path is required"
	ConfigUnknownProvider  = "unknown provider %q in config (supported: %s)"
	ConfigNoProviders      = "no providers enabled; edit %s to enable at least one"
	ConfigResolveHomeFmt   = "resolve home dir: %w"
	RootNotFoundFmt        = "no .claudekit directory found from %s upward; run ck inside a ClaudeKit project"
	KitRootRequired        = "kit root path is required"
	TargetSystemRequired   = "target prober requires a System"
	ExecuteSystemRequired  = "executor requires a System"
	ExecutePlanRequired    = "executor requires a plan"
	ExecuteLockHeldFmt     = "another sync is already running (lock %s held): %v"
	ExecuteOpenLockFmt     = "open lock file %s: %w"
	ExecuteReleaseLockFmt  = "release lock file %s: %w"
	RegistryDecodeFmt      = "decode registry %s: %w"
	RegistryEncodeFmt      = "encode registry: %w"
	RegistrySchemaFmt      = "registry %s has unsupported schema version %d (supported: %d)"
	ManifestDecodeFmt      = "decode kit manifest %s: %w"
	ManifestSchemaFmt      = "kit manifest %s has unsupported schema version %d (supported: %d)"
	ResolutionMissingFmt   = "conflict for %s (%s/%s) has no resolution"
	ResolutionInvalidFmt   = "unknown conflict resolution %q (supported: %s, %s, %s)"
	ResolutionUnmergedFmt  = "smart-merge is not yet supported; choose %s or %s for %s"
	ExecuteWriteFmt        = "write %s: %w"
	ExecuteDeleteFmt       = "delete %s: %w"
	ExecuteRegistrySaveFmt = "save registry: %w"
)
