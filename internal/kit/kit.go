// Package kit scans a kit content directory and materializes the source
// state the reconciler consumes: one entry per shipped item, with the
// canonical checksum and a per-provider checksum of the content as that
// provider would install it. Conversion failures degrade to the unknown
// checksum so reconciliation can decide safely instead of aborting.
package kit

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/mrgoonie/claudekit/internal/checksum"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/reconcile"
)

// Kit layout, relative to the kit root.
const (
	agentsDir   = "agents"
	commandsDir = "commands"
	skillsDir   = "skills"
	rulesDir    = "rules"
	configFile  = "config/settings.json"
	skillFile   = "SKILL.md"
)

// Item is one scanned kit item: the reconciler-facing state plus the
// converted content the execution layer writes.
type Item struct {
	State     reconcile.SourceItemState
	Converted map[providers.Provider][]byte
}

// Scan walks the kit rooted at fsys and returns items in deterministic
// order (by type, then name). Only conversions for provs are computed.
func Scan(fsys fs.FS, provs []providers.Provider) ([]Item, error) {
	if fsys == nil {
		return nil, fmt.Errorf(messages.KitRootRequired)
	}
	var items []Item

	collect := func(dir string, contentType providers.ContentType) error {
		names, err := markdownNames(fsys, dir)
		if err != nil {
			return err
		}
		for _, name := range names {
			sourcePath := path.Join(dir, name+".md")
			item, err := scanItem(fsys, sourcePath, name, contentType, provs)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	}

	if err := collect(agentsDir, providers.TypeAgent); err != nil {
		return nil, err
	}
	if err := collect(commandsDir, providers.TypeCommand); err != nil {
		return nil, err
	}

	skillNames, err := skillDirs(fsys)
	if err != nil {
		return nil, err
	}
	for _, name := range skillNames {
		sourcePath := path.Join(skillsDir, name, skillFile)
		item, err := scanItem(fsys, sourcePath, name, providers.TypeSkill, provs)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if data, err := fs.ReadFile(fsys, configFile); err == nil {
		items = append(items, buildItem(configFile, "settings", providers.TypeConfig, data, provs))
	}

	if err := collect(rulesDir, providers.TypeRules); err != nil {
		return nil, err
	}

	return items, nil
}

// States projects the reconciler-facing slice out of scanned items.
func States(items []Item) []reconcile.SourceItemState {
	states := make([]reconcile.SourceItemState, len(items))
	for i, item := range items {
		states[i] = item.State
	}
	return states
}

// ContentIndex keys converted content by identity-without-scope, for the
// execution layer. Converted bytes do not depend on scope, only provider.
func ContentIndex(items []Item) map[reconcile.Identity]map[providers.Provider][]byte {
	index := make(map[reconcile.Identity]map[providers.Provider][]byte, len(items))
	for _, item := range items {
		key := reconcile.Identity{Item: item.State.Item, Type: item.State.Type}
		index[key] = item.Converted
	}
	return index
}

func scanItem(fsys fs.FS, sourcePath, name string, contentType providers.ContentType, provs []providers.Provider) (Item, error) {
	data, err := fs.ReadFile(fsys, sourcePath)
	if err != nil {
		return Item{}, fmt.Errorf("read kit item %s: %w", sourcePath, err)
	}
	return buildItem(sourcePath, name, contentType, data, provs), nil
}

func buildItem(sourcePath, name string, contentType providers.ContentType, data []byte, provs []providers.Provider) Item {
	item := Item{
		State: reconcile.SourceItemState{
			Item:               name,
			Type:               contentType,
			SourcePath:         sourcePath,
			SourceChecksum:     checksum.Compute(data),
			ConvertedChecksums: make(map[providers.Provider]string, len(provs)),
		},
		Converted: make(map[providers.Provider][]byte, len(provs)),
	}
	for _, p := range provs {
		if !p.Supports(contentType) {
			continue
		}
		converted, err := p.Convert(contentType, data)
		if err != nil {
			// Cannot verify what this provider would install; the
			// reconciler picks the least destructive action.
			item.State.ConvertedChecksums[p] = checksum.Unknown
			continue
		}
		item.State.ConvertedChecksums[p] = checksum.Compute(converted)
		item.Converted[p] = converted
	}
	return item
}

// markdownNames lists <dir>/<name>.md entries, sorted. A missing dir means
// the kit ships no items of that type.
func markdownNames(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// skillDirs lists skills/<name>/SKILL.md bundles, sorted.
func skillDirs(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, skillsDir)
	if err != nil {
		return nil, nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := fs.Stat(fsys, path.Join(skillsDir, entry.Name(), skillFile)); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
