package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskManager/internal/filter"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := taskStore(cmd.Context())
		if err != nil {
			return err
		}

		stats := filter.ComputeStats(s.Tasks(), time.Now())
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Total:        %d\n", stats.Total)
		fmt.Fprintf(out, "Completed:    %d (%d%%)\n", stats.Completed, stats.CompletionRate)
		fmt.Fprintf(out, "Pending:      %d\n", stats.Pending)
		fmt.Fprintf(out, "In progress:  %d\n", stats.InProgress)
		fmt.Fprintf(out, "High priority: %d\n", stats.HighPriority)
		if stats.Overdue > 0 {
			fmt.Fprintf(out, "Overdue:      %d\n", stats.Overdue)
		}
		return nil
	},
}
