package messages

// Reconcile reasons attached to plan actions. These strings are part of the
// machine-readable plan output; downstream tooling matches on them, so they
// must stay stable across releases.
const (
	// ReasonNewItem is attached to installs of items never seen before.
	ReasonNewItem = "New item, not previously installed"
	// ReasonNewProvider is attached to installs of known items onto a new provider.
	ReasonNewProvider = "New provider for existing item"
	// ReasonChecksumUnavailable is attached to skips when the provider-converted checksum cannot be computed.
	ReasonChecksumUnavailable = "Provider checksum unavailable — cannot verify safely"
	// ReasonRegistryBootstrap is attached to skips on the first run after a registry schema upgrade.
	ReasonRegistryBootstrap = "First run after registry upgrade — populating checksums (no writes)"

	ReasonDeletedSourceChanged   = "Target was deleted, CK has updates — reinstalling"
	ReasonDeletedSourceUnchanged = "Target was deleted by user, CK unchanged — respecting deletion"
	ReasonUnknownSourceChanged   = "Target state unavailable while CK changed — manual review required"
	ReasonUnknownSourceUnchanged = "Target state unavailable, CK unchanged — preserving target"
	ReasonNoChanges              = "No changes"
	ReasonUserEdited             = "User edited, CK unchanged — preserving edits"
	ReasonSafeUpdate             = "CK updated, no user edits — safe overwrite"
	ReasonBothModified           = "Both CK and user modified this item"

	// ReasonOrphaned is attached to deletes of registry entries with no matching source item.
	ReasonOrphaned = "Item no longer in CK source — orphaned"

	// ReasonRenamedFmt formats deletes emitted for manifest-declared renames.
	ReasonRenamedFmt = "Renamed in kit: %s -> %s"
	// ReasonPathMigratedFmt formats deletes emitted for provider path migrations.
	ReasonPathMigratedFmt = "Provider path migrated: %s -> %s"
)

// Reconcile warning codes and messages for rejected manifest directives.
const (
	WarnDirectivePathAbsoluteFmt  = "ignoring %s directive: path %q is absolute"
	WarnDirectivePathTraversalFmt = "ignoring %s directive: path %q contains a parent-directory segment"
	WarnDirectivePathEmptyFmt     = "ignoring %s directive: empty path"
)
