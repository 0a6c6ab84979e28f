package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrgoonie/claudekit/internal/config"
	executepkg "github.com/mrgoonie/claudekit/internal/execute"
	"github.com/mrgoonie/claudekit/internal/kit"
	"github.com/mrgoonie/claudekit/internal/lock"
	"github.com/mrgoonie/claudekit/internal/manifest"
	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/reconcile"
	"github.com/mrgoonie/claudekit/internal/registry"
	"github.com/mrgoonie/claudekit/internal/target"
)

// syncRun is everything one reconciliation run loaded and computed. The
// sync and status commands share the pipeline; only sync executes it.
type syncRun struct {
	paths        config.Paths
	registryPath string
	lockPath     string
	items        []kit.Item
	reg          *registry.Registry
	directives   *manifest.Directives
	plan         *reconcile.Plan
}

func newSyncCmd() *cobra.Command {
	var dryRun, global, asJSON, overwrite, keep bool
	cmd := &cobra.Command{
		Use:   messages.SyncUse,
		Short: messages.SyncShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			if overwrite && keep {
				return fmt.Errorf(messages.SyncResolutionFlags)
			}
			run, err := buildPlan(global)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), run.plan)
			if err := printPlan(cmd.OutOrStdout(), run.plan, asJSON); err != nil {
				return err
			}
			if dryRun {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), messages.SyncDryRunNote)
				return nil
			}

			resolutions, err := resolveRun(cmd, run, overwrite, keep, asJSON)
			if err != nil {
				return err
			}

			var result *executepkg.Result
			err = lock.With(run.lockPath, func() error {
				var applyErr error
				result, applyErr = executepkg.Apply(run.plan, executepkg.Options{
					System:          executepkg.RealSystem{},
					Items:           run.items,
					Registry:        run.reg,
					RegistryPath:    run.registryPath,
					ManifestVersion: manifestVersion(run.directives),
					Resolutions:     resolutions,
				})
				return applyErr
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.SyncAppliedFmt,
				result.Written, result.Deleted, result.RegistryUpdates)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.SyncFlagDryRun)
	cmd.Flags().BoolVar(&global, "global", false, messages.SyncFlagGlobal)
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.SyncFlagJSON)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, messages.SyncFlagYes)
	cmd.Flags().BoolVar(&keep, "keep", false, messages.SyncFlagKeep)
	return cmd
}

// buildPlan loads config, kit, registry, manifest, and live target state,
// then reconciles them into a plan. It performs no writes.
func buildPlan(global bool) (*syncRun, error) {
	root, err := resolveProjectRoot()
	if err != nil {
		return nil, err
	}
	paths := config.DefaultPaths(root)
	cfg, err := config.Load(os.DirFS(root), root)
	if err != nil {
		return nil, err
	}

	// The kit always ships with the project; only install locations and
	// state files move for a global run.
	installRoot := root
	registryPath := paths.RegistryPath
	lockPath := paths.LockPath
	if global {
		userPaths, err := config.UserPaths()
		if err != nil {
			return nil, err
		}
		installRoot = userPaths.Root
		registryPath = userPaths.RegistryPath
		lockPath = userPaths.LockPath
	}

	items, err := kit.Scan(os.DirFS(paths.KitDir), cfg.Providers)
	if err != nil {
		return nil, err
	}
	reg, err := registry.Load(registry.RealSystem{}, registryPath)
	if err != nil {
		return nil, err
	}
	directives, err := manifest.Load(os.ReadFile, paths.ManifestPath)
	if err != nil {
		return nil, err
	}
	targetStates, err := target.Probe(target.RealSystem{}, reg)
	if err != nil {
		return nil, err
	}

	plan := reconcile.Reconcile(reconcile.Input{
		SourceItems:    kit.States(items),
		Providers:      cfg.ProviderConfigs(global, installRoot),
		Registry:       reg,
		TargetStates:   targetStates,
		Directives:     directives,
		CurrentVersion: Version,
	})
	return &syncRun{
		paths:        paths,
		registryPath: registryPath,
		lockPath:     lockPath,
		items:        items,
		reg:          reg,
		directives:   directives,
		plan:         plan,
	}, nil
}

// resolveRun turns the conflict flags, or an interactive prompt, into a
// full resolution set for the plan.
func resolveRun(cmd *cobra.Command, run *syncRun, overwrite, keep, asJSON bool) (map[reconcile.Identity]executepkg.Resolution, error) {
	switch {
	case overwrite:
		return executepkg.UniformResolutions(run.plan, executepkg.ResolutionOverwrite), nil
	case keep:
		return executepkg.UniformResolutions(run.plan, executepkg.ResolutionKeep), nil
	case !run.plan.HasConflicts:
		return nil, nil
	case asJSON:
		return nil, fmt.Errorf(messages.SyncConflictsBlocked)
	default:
		return executepkg.ResolveConflicts(run.plan, executepkg.HuhPrompter{Out: cmd.ErrOrStderr()},
			executepkg.RealSystem{}, kit.ContentIndex(run.items))
	}
}

func manifestVersion(directives *manifest.Directives) string {
	if directives == nil {
		return ""
	}
	return directives.Version
}

func printWarnings(out io.Writer, plan *reconcile.Plan) {
	for _, w := range plan.Warnings {
		_, _ = fmt.Fprintln(out, w.Message)
	}
}

var actionColors = map[reconcile.ActionKind]*color.Color{
	reconcile.ActionInstall:  color.New(color.FgGreen),
	reconcile.ActionUpdate:   color.New(color.FgYellow),
	reconcile.ActionSkip:     color.New(color.Faint),
	reconcile.ActionConflict: color.New(color.FgRed, color.Bold),
	reconcile.ActionDelete:   color.New(color.FgRed),
}

// printPlan renders the plan, one line per action, or the raw plan JSON.
func printPlan(out io.Writer, plan *reconcile.Plan, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}
	if len(plan.Actions) == 0 {
		_, _ = fmt.Fprintln(out, messages.SyncNothingToDo)
		return nil
	}
	_, _ = fmt.Fprintf(out, messages.SyncPlanHeaderFmt,
		plan.Summary.Install, plan.Summary.Update, plan.Summary.Skip,
		plan.Summary.Conflict, plan.Summary.Delete)
	for _, action := range plan.Actions {
		scope := "project"
		if action.Global {
			scope = "global"
		}
		c, ok := actionColors[action.Action]
		if !ok {
			c = color.New()
		}
		_, _ = c.Fprintf(out, messages.SyncActionLineFmt,
			action.Action, scope,
			fmt.Sprintf("%s/%s (%s)", action.Provider, action.Item, action.Type),
			action.Reason)
	}
	return nil
}
