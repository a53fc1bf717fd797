package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var recipientCmd = &cobra.Command{
	Use:   "recipient [email]",
	Short: "Show or set the report recipient",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecipient,
}

func runRecipient(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if r := s.tracker.Recipient(); r != "" {
			fmt.Fprintln(out, r)
		} else {
			fmt.Fprintln(out, "(not set)")
		}
		return nil
	}

	email := strings.TrimSpace(args[0])
	s.tracker.SetRecipient(cmd.Context(), email)
	fmt.Fprintf(out, "Reports will be sent to %s.\n", email)
	return nil
}
