package execute

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mrgoonie/claudekit/internal/messages"
	"github.com/mrgoonie/claudekit/internal/providers"
	"github.com/mrgoonie/claudekit/internal/reconcile"
)

// Prompter obtains a resolution for one conflict action.
type Prompter interface {
	Resolve(action reconcile.Action, diff string) (Resolution, error)
}

// ResolveConflicts collects a resolution for every conflict in the plan.
// sys reads target and kit content for the diff preview; read failures
// just drop the preview, never the prompt.
func ResolveConflicts(plan *reconcile.Plan, prompter Prompter, sys System, content map[reconcile.Identity]map[providers.Provider][]byte) (map[reconcile.Identity]Resolution, error) {
	resolutions := make(map[reconcile.Identity]Resolution)
	for _, action := range plan.Actions {
		if action.Action != reconcile.ActionConflict {
			continue
		}
		diff := ""
		if sys != nil {
			current, err := sys.ReadFile(action.TargetPath)
			incoming := content[reconcile.Identity{Item: action.Item, Type: action.Type}][action.Provider]
			if err == nil && incoming != nil {
				diff = ConflictDiff(action.TargetPath, current, incoming, DefaultDiffMaxLines)
			}
		}
		resolution, err := prompter.Resolve(action, diff)
		if err != nil {
			return nil, err
		}
		resolutions[action.Identity()] = resolution
	}
	return resolutions, nil
}

// HuhPrompter resolves conflicts interactively with a select form.
type HuhPrompter struct {
	Out io.Writer
}

// Resolve shows the diff and asks for a resolution. Smart merge is listed
// so the vocabulary is visible, but choosing it re-prompts: there is no
// merge implementation to hand the conflict to yet.
func (p HuhPrompter) Resolve(action reconcile.Action, diff string) (Resolution, error) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf(messages.PromptNoTerminal)
	}
	if diff != "" {
		_, _ = fmt.Fprintln(out, diff)
	}
	for {
		choice := ResolutionOverwrite
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[Resolution]().
				Title(fmt.Sprintf(messages.PromptConflictTitleFmt, action.Item, action.Provider, action.Type)).
				Description(messages.PromptConflictDescription).
				Options(
					huh.NewOption(messages.PromptOptionOverwrite, ResolutionOverwrite),
					huh.NewOption(messages.PromptOptionKeep, ResolutionKeep),
					huh.NewOption(messages.PromptOptionMerge, ResolutionSmartMerge),
				).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			return "", err
		}
		if choice == ResolutionSmartMerge {
			_, _ = fmt.Fprintf(out, messages.ResolutionUnmergedFmt+"\n", ResolutionOverwrite, ResolutionKeep, action.Item)
			continue
		}
		return choice, nil
	}
}
