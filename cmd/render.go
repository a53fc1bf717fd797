package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

const noEntriesMessage = "No entries for this month yet."

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Align(lipgloss.Center)

	tileLabelStyle = lipgloss.NewStyle().Faint(true)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("9")).
			Foreground(lipgloss.Color("9")).
			Padding(0, 1)

	notesStyle = lipgloss.NewStyle().Italic(true).PaddingLeft(6)
)

func renderHeader(period string) string {
	return headerStyle.Render(period)
}

// renderEntry renders one list row, e.g. "#12  Mon, Mar 3  8h  $240.00".
func renderEntry(e model.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%-4d %s  %sh  $%s",
		e.ID,
		paycalc.ShortDate(e.Date),
		paycalc.FormatHours(e.Hours),
		paycalc.FormatMoney(paycalc.PayFor(e.Hours)),
	)
	if e.Expenses > 0 {
		fmt.Fprintf(&b, "  Expenses: $%.2f", e.Expenses)
	}
	if e.Comments != "" {
		b.WriteString("\n")
		b.WriteString(notesStyle.Render(e.Comments))
	}
	return b.String()
}

// renderEntries renders entries in the given order.
func renderEntries(entries []model.Entry) string {
	if len(entries) == 0 {
		return noEntriesMessage
	}
	rows := make([]string, len(entries))
	for i, e := range entries {
		rows[i] = renderEntry(e)
	}
	return strings.Join(rows, "\n")
}

func renderTile(label, value string) string {
	return tileStyle.Render(tileLabelStyle.Render(label) + "\n" + value)
}

// renderTiles renders the hours, pay and expenses totals side by side.
func renderTiles(t paycalc.Totals) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderTile("Total Hours", t.TotalHours.StringFixed(1)),
		renderTile("Total Pay", "$"+paycalc.FormatMoney(t.TotalPay)),
		renderTile("Expenses", "$"+paycalc.FormatMoney(t.TotalExpenses)),
	)
}

// renderError renders msg in a red "Error" box.
func renderError(msg string) string {
	return errorStyle.Render("Error\n" + msg)
}
