// Package registry persists the record of what a kit previously installed:
// one entry per installed file, with the checksums registered at the last
// successful install. The reconciler reads this snapshot; only the execution
// layer writes it back, after the filesystem matches the plan.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mrgoonie/claudekit/internal/fsutil"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
)

// SchemaVersion is the current registry.json schema. Version 1 predates
// per-entry checksums; entries loaded from it carry empty checksums, which
// the reconciler treats as unverifiable and bootstraps without writes.
const SchemaVersion = 2

// InstallSource records who put a file in place.
const (
	// InstallSourceCK marks entries written by ck itself.
	InstallSourceCK = "ck"
	// InstallSourceManual marks entries adopted from user-created files.
	// Manual entries are never orphan-deleted.
	InstallSourceManual = "manual"
)

// Entry is one persisted installation record.
type Entry struct {
	Item           string                 `json:"item"`
	Type           providers.ContentType  `json:"type"`
	Provider       providers.Provider     `json:"provider"`
	Global         bool                   `json:"global"`
	Path           string                 `json:"path"`
	SourceChecksum string                 `json:"source_checksum,omitempty"`
	TargetChecksum string                 `json:"target_checksum,omitempty"`
	SourcePath     string                 `json:"source_path,omitempty"`
	InstallSource  string                 `json:"install_source,omitempty"`
}

// Registry is the full persisted state.
type Registry struct {
	SchemaVersion          int     `json:"schema_version"`
	AppliedManifestVersion string  `json:"applied_manifest_version,omitempty"`
	Installations          []Entry `json:"installations"`
}

// System abstracts the file operations the registry store needs.
type System interface {
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(name string, data []byte, perm os.FileMode) error
}

// RealSystem implements System against the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MkdirAll creates path and any missing parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic writes data to path atomically.
func (RealSystem) WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(name, data, perm)
}

// Load reads the registry at path. A missing file is a first run and yields
// an empty registry at the current schema, not an error.
func Load(sys System, path string) (*Registry, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Registry{SchemaVersion: SchemaVersion}, nil
		}
		return nil, err
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf(messages.RegistryDecodeFmt, path, err)
	}
	if reg.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf(messages.RegistrySchemaFmt, path, reg.SchemaVersion, SchemaVersion)
	}
	return &reg, nil
}

// Save writes the registry to path atomically, creating parent directories
// as needed. The schema version is stamped to the current value on save.
func Save(sys System, path string, reg *Registry) error {
	reg.SchemaVersion = SchemaVersion
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.RegistryEncodeFmt, err)
	}
	if err := sys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return sys.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

// Find returns the canonical entry for an (item, type, provider, global)
// identity, or nil. The match is exact except for config: a provider has
// exactly one settings file per scope, so the sole config entry for that
// (provider, global) pair matches regardless of recorded item name.
func (r *Registry) Find(item string, t providers.ContentType, provider providers.Provider, global bool) *Entry {
	for i := range r.Installations {
		e := &r.Installations[i]
		if e.Item == item && e.Type == t && e.Provider == provider && e.Global == global {
			return e
		}
	}
	if t == providers.TypeConfig {
		for i := range r.Installations {
			e := &r.Installations[i]
			if e.Type == providers.TypeConfig && e.Provider == provider && e.Global == global {
				return e
			}
		}
	}
	return nil
}

// Remove deletes the entry at the exact (item, type, provider, global)
// identity, if present, and reports whether anything was removed.
func (r *Registry) Remove(item string, t providers.ContentType, provider providers.Provider, global bool) bool {
	for i := range r.Installations {
		e := &r.Installations[i]
		if e.Item == item && e.Type == t && e.Provider == provider && e.Global == global {
			r.Installations = append(r.Installations[:i], r.Installations[i+1:]...)
			return true
		}
	}
	return false
}

// Upsert replaces the entry matching entry's identity or appends it.
func (r *Registry) Upsert(entry Entry) {
	for i := range r.Installations {
		e := &r.Installations[i]
		if e.Item == entry.Item && e.Type == entry.Type && e.Provider == entry.Provider && e.Global == entry.Global {
			r.Installations[i] = entry
			return
		}
	}
	r.Installations = append(r.Installations, entry)
}
