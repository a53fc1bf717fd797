package cmd

import (
	"strings"
	"testing"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

func TestRenderEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   model.Entry
		want    []string
		notWant []string
	}{
		{
			name:    "hours only",
			entry:   model.Entry{ID: 3, Date: "2025-03-03", Hours: 8},
			want:    []string{"#3", "Mon, Mar 3", "8h", "$240.00"},
			notWant: []string{"Expenses", "\n"},
		},
		{
			name:  "expenses and notes",
			entry: model.Entry{ID: 4, Date: "2025-03-04", Hours: 2.5, Expenses: 12.5, Comments: "pharmacy"},
			want:  []string{"2.5h", "$75.00", "Expenses: $12.50", "\n", "pharmacy"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderEntry(tt.entry)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderEntry = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("renderEntry = %q, unexpected %q", got, w)
				}
			}
		})
	}
}

func TestRenderEntriesEmpty(t *testing.T) {
	if got := renderEntries(nil); got != noEntriesMessage {
		t.Errorf("renderEntries(nil) = %q", got)
	}
}

func TestRenderTiles(t *testing.T) {
	totals := paycalc.ComputeTotals([]model.Entry{
		{Date: "2025-03-01", Hours: 4},
		{Date: "2025-03-03", Hours: 6, Expenses: 12.5},
	})
	got := renderTiles(totals)
	for _, want := range []string{"Total Hours", "10.0", "Total Pay", "$300.00", "Expenses", "$12.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("tiles missing %q:\n%s", want, got)
		}
	}
}

func TestRenderError(t *testing.T) {
	got := renderError("loading entries: boom")
	if !strings.Contains(got, "Error") || !strings.Contains(got, "loading entries: boom") {
		t.Errorf("renderError = %q", got)
	}
}
