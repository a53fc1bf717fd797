package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caregiver-hours/internal/tracker"
)

var newMonthYes bool

var newMonthCmd = &cobra.Command{
	Use:   "new-month",
	Short: "Start a new month, offering to send the outgoing report first",
	Args:  cobra.NoArgs,
	RunE:  runNewMonth,
}

func init() {
	newMonthCmd.Flags().BoolVarP(&newMonthYes, "yes", "y", false, "Send the report without asking")
}

func runNewMonth(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, sessionOptions{assumeYes: newMonthYes})
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	t := s.tracker
	err = t.StartNewPeriod(cmd.Context())
	var loadErr *tracker.LoadError
	switch {
	case errors.As(err, &loadErr):
		fmt.Fprintln(out, renderError(t.LastError()))
		return reported()
	case errors.Is(err, tracker.ErrNoRecipient):
		fmt.Fprintln(out, "Set one with: cht recipient <email>")
	case err != nil:
		fmt.Fprintln(out, renderError(err.Error()))
	}

	fmt.Fprintln(out, renderHeader(t.Period()))
	fmt.Fprintln(out, renderEntries(t.Entries()))
	if err != nil {
		return reported()
	}
	return nil
}
