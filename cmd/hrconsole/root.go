package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hrconsole",
		Short: "HR console gateway",
		Long: `hrconsole serves the HR console: it owns the browser session, attaches the
bearer token to HR API calls and guards console navigation by role and completion state.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newRoutesCmd(), newRolesCmd())
	return root
}
