package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show this month's hours, pay and expenses",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderHeader(s.tracker.Period()))
	fmt.Fprintln(out, renderTiles(s.tracker.Totals()))
	return nil
}
