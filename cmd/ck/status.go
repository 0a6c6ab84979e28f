package main

import (
	"github.com/spf13/cobra"

	"github.com/mrgoonie/claudekit/internal/messages"
)

func newStatusCmd() *cobra.Command {
	var global, asJSON bool
	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := buildPlan(global)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), run.plan)
			return printPlan(cmd.OutOrStdout(), run.plan, asJSON)
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, messages.SyncFlagGlobal)
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.SyncFlagJSON)
	return cmd
}
