package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
	"github.com/Tiliavir/caregiver-hours/internal/report"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export this month's entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	switch exportFormat {
	case "csv", "json", "md":
	default:
		return fmt.Errorf("unknown export format %q: want csv, json or md", exportFormat)
	}

	s, err := openSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	t := s.tracker
	return writeExport(cmd.OutOrStdout(), exportFormat, t.Period(), report.SortAscending(t.Entries()))
}

// exportRow is one entry with its computed pay.
type exportRow struct {
	model.Entry
	Pay string `json:"pay"`
}

type exportDoc struct {
	Period        string      `json:"period"`
	HourlyRate    string      `json:"hourly_rate"`
	Entries       []exportRow `json:"entries"`
	TotalHours    string      `json:"total_hours"`
	TotalPay      string      `json:"total_pay"`
	TotalExpenses string      `json:"total_expenses"`
}

// writeExport writes entries, oldest first, in the given format.
func writeExport(w io.Writer, format, period string, entries []model.Entry) error {
	totals := paycalc.ComputeTotals(entries)
	switch format {
	case "json":
		doc := exportDoc{
			Period:        period,
			HourlyRate:    paycalc.FormatMoney(paycalc.HourlyRate),
			Entries:       make([]exportRow, len(entries)),
			TotalHours:    totals.TotalHours.String(),
			TotalPay:      paycalc.FormatMoney(totals.TotalPay),
			TotalExpenses: paycalc.FormatMoney(totals.TotalExpenses),
		}
		for i, e := range entries {
			doc.Entries[i] = exportRow{Entry: e, Pay: paycalc.FormatMoney(paycalc.PayFor(e.Hours))}
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "md":
		return writeMarkdown(w, period, entries, totals)
	default:
		return writeCSV(w, entries)
	}
}

func writeCSV(w io.Writer, entries []model.Entry) error {
	if _, err := fmt.Fprintln(w, "id,date,hours,pay,expenses,comments"); err != nil {
		return err
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%d,%s,%s,%s,%.2f,%s\n",
			e.ID,
			e.Date,
			paycalc.FormatHours(e.Hours),
			paycalc.FormatMoney(paycalc.PayFor(e.Hours)),
			e.Expenses,
			csvEscape(e.Comments),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdown(w io.Writer, period string, entries []model.Entry, totals paycalc.Totals) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", report.Subject(period))
	b.WriteString("| Date | Hours | Pay | Expenses | Notes |\n")
	b.WriteString("|---|---:|---:|---:|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | $%s | $%.2f | %s |\n",
			paycalc.ShortDate(e.Date),
			paycalc.FormatHours(e.Hours),
			paycalc.FormatMoney(paycalc.PayFor(e.Hours)),
			e.Expenses,
			mdEscape(e.Comments),
		)
	}
	fmt.Fprintf(&b, "| **Total** | %s | $%s | $%s | |\n",
		totals.TotalHours.StringFixed(1),
		paycalc.FormatMoney(totals.TotalPay),
		paycalc.FormatMoney(totals.TotalExpenses),
	)
	_, err := io.WriteString(w, b.String())
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// mdEscape keeps notes inside a single table cell.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
