package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrgoonie/claudekit/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newStatusCmd())
	return cmd
}

// resolveProjectRoot walks up from the working directory until it finds a
// directory containing .claudekit.
func resolveProjectRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	dir := cwd
	for {
		info, err := os.Stat(filepath.Join(dir, ".claudekit"))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf(messages.RootNotFoundFmt, cwd)
		}
		dir = parent
	}
}
