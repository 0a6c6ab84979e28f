// Package config loads the per-project ClaudeKit configuration from
// .claudekit/config.toml: which providers to sync and where the kit and
// state files live.
package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/reconcile"
)

// Paths holds resolved paths for config and state files under a root.
type Paths struct {
	Root         string
	ConfigPath   string
	KitDir       string
	ManifestPath string
	RegistryPath string
	LockPath     string
}

// DefaultPaths returns the ClaudeKit paths for a project root.
func DefaultPaths(root string) Paths {
	return Paths{
		Root:         root,
		ConfigPath:   filepath.Join(root, ".claudekit", "config.toml"),
		KitDir:       filepath.Join(root, ".claudekit", "kit"),
		ManifestPath: filepath.Join(root, ".claudekit", "kit", "manifest.json"),
		RegistryPath: filepath.Join(root, ".claudekit", "registry.json"),
		LockPath:     filepath.Join(root, ".claudekit", "sync.lock"),
	}
}

// UserPaths returns the user-wide state paths. The kit itself always ships
// with the project; only registry and lock move for global scope.
func UserPaths() (Paths, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigResolveHomeFmt, err)
	}
	paths := DefaultPaths(home)
	paths.Root = home
	return paths, nil
}

// rawConfig is the TOML shape of config.toml.
type rawConfig struct {
	Providers []string `toml:"providers"`
}

// Config is the validated project configuration.
type Config struct {
	Providers []providers.Provider
}

// Load reads and validates config.toml from fsys, which must be rooted at
// the project root. root is used only for error messages.
func Load(fsys fs.FS, root string) (*Config, error) {
	if fsys == nil {
		return nil, fmt.Errorf(messages.ConfigFSRequired)
	}
	if root == "" {
		return nil, fmt.Errorf(messages.ConfigRootRequired)
	}
	relPath := filepath.ToSlash(filepath.Join(".claudekit", "config.toml"))
	data, err := fs.ReadFile(fsys, relPath)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, filepath.Join(root, relPath), err)
	}
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, filepath.Join(root, relPath), err)
	}
	return validate(raw, filepath.Join(root, relPath))
}

func validate(raw rawConfig, configPath string) (*Config, error) {
	if len(raw.Providers) == 0 {
		return nil, fmt.Errorf(messages.ConfigNoProviders, configPath)
	}
	cfg := &Config{}
	seen := make(map[providers.Provider]bool)
	for _, name := range raw.Providers {
		p, err := providers.Parse(name)
		if err != nil {
			return nil, fmt.Errorf(messages.ConfigUnknownProvider, name, providers.SupportedList())
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		cfg.Providers = append(cfg.Providers, p)
	}
	return cfg, nil
}

// ProviderConfigs expands the configured providers into the deduplicated
// provider × scope list reconciliation runs against. Providers without a
// user-wide install location are silently dropped from a global run.
func (c *Config) ProviderConfigs(global bool, root string) []reconcile.ProviderConfig {
	var configs []reconcile.ProviderConfig
	for _, p := range c.Providers {
		if global && !p.SupportsGlobal() {
			continue
		}
		configs = append(configs, reconcile.ProviderConfig{Provider: p, Global: global, Root: root})
	}
	return configs
}

// ProviderNames renders the configured providers for display.
func (c *Config) ProviderNames() string {
	names := make([]string, len(c.Providers))
	for i, p := range c.Providers {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
