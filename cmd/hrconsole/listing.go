package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/hr-console/internal/access"
	httptransport "github.com/spec-kit/hr-console/internal/api/http"
	"github.com/spec-kit/hr-console/internal/domain"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the console page table with guard levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PATH\tPAGE\tLEVEL")
			for _, p := range httptransport.Pages() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Path, p.Page, p.Level)
			}
			return w.Flush()
		},
	}
}

func newRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "Print the landing dashboard of every role",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ROLE\tLANDING ROUTE")
			for _, role := range domain.Roles() {
				fmt.Fprintf(w, "%s\t%s\n", role, access.LandingRoute(role))
			}
			return w.Flush()
		},
	}
}
