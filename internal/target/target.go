// Package target probes the live state of every path the registry
// references, ahead of reconciliation. Probe failures never surface as
// errors: an unreadable file degrades to the unknown checksum and an
// unstattable path to an unprobed entry, so the reconciler decides with
// "cannot verify" semantics instead of guessing.
package target

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mrgoonie/claudekit/internal/checksum"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/pathutil"
	"github.com/mrgoonie/claudekit/internal/reconcile"
	"github.com/mrgoonie/claudekit/internal/registry"
)

// System abstracts the probe operations.
type System interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// RealSystem implements System against the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads the named file.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Probe builds the path-keyed target state map for every registry entry.
// Keys are normalized registered paths, matching the reconciler's lookup.
func Probe(sys System, reg *registry.Registry) (map[string]reconcile.TargetFileState, error) {
	if sys == nil {
		return nil, fmt.Errorf(messages.TargetSystemRequired)
	}
	states := make(map[string]reconcile.TargetFileState, len(reg.Installations))
	for i := range reg.Installations {
		entry := &reg.Installations[i]
		key := pathutil.Normalize(entry.Path)
		if _, done := states[key]; done {
			continue
		}
		states[key] = probeOne(sys, entry.Path)
	}
	return states, nil
}

func probeOne(sys System, path string) reconcile.TargetFileState {
	info, err := sys.Stat(path)
	switch {
	case err == nil && info.IsDir():
		// A directory where a file was recorded: existence is real but the
		// content cannot be verified.
		return reconcile.TargetFileState{Path: path, Exists: true, CurrentChecksum: checksum.Unknown}
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return reconcile.TargetFileState{Path: path, Exists: false}
	default:
		// Permission or I/O trouble: existence itself is undetermined.
		return reconcile.TargetFileState{Path: path, Exists: true, CurrentChecksum: checksum.Unknown}
	}
	data, err := sys.ReadFile(path)
	if err != nil {
		return reconcile.TargetFileState{Path: path, Exists: true, CurrentChecksum: checksum.Unknown}
	}
	return reconcile.TargetFileState{Path: path, Exists: true, CurrentChecksum: checksum.Compute(data)}
}
