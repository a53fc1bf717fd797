package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caregiver-hours/internal/mailto"
	"github.com/Tiliavir/caregiver-hours/internal/tracker"
)

var reportPrint bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Email this month's report through the mail client",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportPrint, "print", false, "Print the report and mailto link instead of opening the mail client")
}

func runReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	opts := sessionOptions{}
	if reportPrint {
		opts.composer = mailto.PrintComposer{W: out, WithBody: true}
	}
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.close()

	if len(s.tracker.Entries()) == 0 {
		fmt.Fprintln(out, noEntriesMessage+" Nothing to report.")
		return nil
	}
	return sendReport(cmd, s.tracker)
}

// sendReport runs SendReport and renders any failure.
func sendReport(cmd *cobra.Command, t *tracker.Tracker) error {
	err := t.SendReport(cmd.Context())
	switch {
	case err == nil:
		if !reportPrint {
			fmt.Fprintf(cmd.OutOrStdout(), "Report for %s handed to the mail client.\n", t.Period())
		}
		return nil
	case errors.Is(err, tracker.ErrNoRecipient):
		fmt.Fprintln(cmd.OutOrStdout(), "Set one with: cht recipient <email>")
		return reported()
	default:
		fmt.Fprintln(cmd.OutOrStdout(), renderError(err.Error()))
		return reported()
	}
}
