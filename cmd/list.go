package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List this month's entries and totals",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	t := s.tracker
	fmt.Fprintln(out, renderHeader(t.Period()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderEntries(t.Entries()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTiles(t.Totals()))
	return nil
}
