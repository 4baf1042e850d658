package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewWeekCmd creates the week command.
func NewWeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print seven days of tides as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, _, err := week(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			if empty := report.EmptyDays(); empty > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d of %d days have no tides\n", empty, len(report.Days))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	return cmd
}
