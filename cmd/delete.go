package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry by id (see cht list)",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid entry id %q", args[0])
	}

	s, err := openSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	if err := s.tracker.DeleteEntry(cmd.Context(), id); err != nil {
		fmt.Fprintln(out, renderError(s.tracker.LastError()))
		return reported()
	}
	fmt.Fprintf(out, "Deleted entry #%d.\n", id)
	return nil
}
