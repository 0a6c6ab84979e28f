// Package manifest loads the kit-shipped directives file describing renames
// and provider path migrations, gated by version applicability. The loader
// is deliberately lenient about directive contents: structurally unsafe
// directives are rejected by the reconciler with a warning rather than
// failing the whole run here.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/version"
)

// SchemaVersion is the supported directives schema.
const SchemaVersion = 1

// Rename declares that a kit source file moved between kit versions.
// Registry entries recorded against the old source path are deleted and
// reinstalled under the new identity.
type Rename struct {
	From         string `json:"from"`
	To           string `json:"to"`
	SinceVersion string `json:"since_version,omitempty"`
}

// PathMigration declares that a provider's install layout changed for a
// content type, so previously installed files live at stale paths.
type PathMigration struct {
	Provider     providers.Provider    `json:"provider"`
	Type         providers.ContentType `json:"type"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	SinceVersion string                `json:"since_version,omitempty"`
}

// SectionRename is reserved for renaming sections inside merged config
// files. No kit ships one yet; the field exists so old CLIs fail loudly on
// a schema bump instead of silently ignoring a new directive kind.
type SectionRename struct {
	From         string `json:"from"`
	To           string `json:"to"`
	SinceVersion string `json:"since_version,omitempty"`
}

// Directives is the parsed manifest.
type Directives struct {
	SchemaVersion          int             `json:"schema_version"`
	Version                string          `json:"version"`
	Renames                []Rename        `json:"renames,omitempty"`
	ProviderPathMigrations []PathMigration `json:"provider_path_migrations,omitempty"`
	SectionRenames         []SectionRename `json:"section_renames,omitempty"`
}

// Load reads and decodes the directives file. A missing file means the kit
// ships no directives and yields nil, not an error.
func Load(readFile func(string) ([]byte, error), path string) (*Directives, error) {
	data, err := readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var directives Directives
	if err := json.Unmarshal(data, &directives); err != nil {
		return nil, fmt.Errorf(messages.ManifestDecodeFmt, path, err)
	}
	if directives.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf(messages.ManifestSchemaFmt, path, directives.SchemaVersion, SchemaVersion)
	}
	return &directives, nil
}

// Applicable reports whether a directive introduced at sinceVersion should
// run, given the manifest version the registry last applied and the running
// CLI version. A directive applies exactly once: after the applied version,
// at or before the current version. An empty sinceVersion always applies;
// rename matching is keyed on old paths, so re-running it is a no-op.
func Applicable(sinceVersion, appliedVersion, currentVersion string) bool {
	if sinceVersion == "" {
		return true
	}
	since, err := version.Normalize(sinceVersion)
	if err != nil {
		return false
	}
	if appliedVersion != "" {
		applied, err := version.Normalize(appliedVersion)
		if err == nil && version.AtMost(since, applied) {
			return false
		}
	}
	if currentVersion == "" {
		return true
	}
	current, err := version.Normalize(currentVersion)
	if err != nil {
		return true
	}
	return version.AtMost(since, current)
}
