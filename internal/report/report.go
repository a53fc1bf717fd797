// Package report renders the plain-text monthly report that is mailed to the
// recipient.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

const (
	titlePrefix = "Caregiver Hours Report - "
	ruleWidth   = 60
)

// Input is everything needed to render a report.
type Input struct {
	Recipient string
	Period    string
	// Entries must already be sorted by date ascending; see SortAscending.
	Entries []model.Entry
	Totals  paycalc.Totals
}

// Subject returns the mail subject for a period label.
func Subject(period string) string {
	return titlePrefix + period
}

// SortAscending returns a copy of entries ordered by date, oldest first.
func SortAscending(entries []model.Entry) []model.Entry {
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// Build renders the report body. It performs no I/O and always returns the
// same text for the same input.
func Build(in Input) string {
	rule := strings.Repeat("=", ruleWidth)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", Subject(in.Period))
	b.WriteString("DAILY ENTRIES:\n")
	fmt.Fprintf(&b, "%s\n\n", rule)

	for _, e := range in.Entries {
		fmt.Fprintf(&b, "Date: %s\n", paycalc.LongDate(e.Date))
		fmt.Fprintf(&b, "Hours: %s\n", paycalc.FormatHours(e.Hours))
		fmt.Fprintf(&b, "Pay: $%s\n", paycalc.FormatMoney(paycalc.PayFor(e.Hours)))
		if e.Expenses > 0 {
			fmt.Fprintf(&b, "Expenses: $%.2f\n", e.Expenses)
		}
		if e.Comments != "" {
			fmt.Fprintf(&b, "Notes: %s\n", e.Comments)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n", rule)
	b.WriteString("MONTHLY SUMMARY:\n")
	fmt.Fprintf(&b, "%s\n\n", rule)
	fmt.Fprintf(&b, "Total Hours: %s\n", in.Totals.TotalHours.StringFixed(1))
	fmt.Fprintf(&b, "Total Pay: $%s\n", paycalc.FormatMoney(in.Totals.TotalPay))
	fmt.Fprintf(&b, "Total Expenses: $%s\n", paycalc.FormatMoney(in.Totals.TotalExpenses))
	fmt.Fprintf(&b, "\nHourly Rate: $%s\n", paycalc.FormatMoney(paycalc.HourlyRate))

	return b.String()
}
