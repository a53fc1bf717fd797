package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

var (
	addDate     string
	addHours    string
	addExpenses string
	addComments string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log hours (and optional expenses) for a day",
	Example: `  cht add --hours 8
  cht add --date 2025-03-03 --hours 6 --expenses 12.50 --comments "drove to pharmacy"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Day worked as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&addHours, "hours", "", "Hours worked")
	addCmd.Flags().StringVar(&addExpenses, "expenses", "", "Expenses in dollars")
	addCmd.Flags().StringVar(&addComments, "comments", "", "Notes for the day")
}

func runAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if strings.TrimSpace(addHours) == "" {
		fmt.Fprintln(out, "Nothing added: --hours is required.")
		return nil
	}

	s, err := openSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	t := s.tracker
	draft := t.Draft()
	if addDate != "" {
		draft.Date = addDate
	}
	draft.Hours = addHours
	draft.Expenses = addExpenses
	draft.Comments = addComments
	t.SetDraft(draft)

	if err := t.SubmitDraft(cmd.Context()); err != nil {
		fmt.Fprintln(out, renderError(t.LastError()))
		return reported()
	}

	created := t.Entries()[0]
	fmt.Fprintf(out, "Added %s\n", renderEntry(created))
	totals := t.Totals()
	fmt.Fprintf(out, "%s so far: %sh, $%s\n",
		t.Period(), totals.TotalHours.StringFixed(1), paycalc.FormatMoney(totals.TotalPay))
	return nil
}
