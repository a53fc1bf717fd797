package paycalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantFirst string
		wantLast  string
	}{
		{time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), "2025-03-01", "2025-03-31"},
		{time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "2025-02-01", "2025-02-28"},
		{time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC), "2025-12-01", "2025-12-31"},
		{time.Date(2025, 4, 30, 8, 0, 0, 0, time.UTC), "2025-04-01", "2025-04-30"},
	}
	for _, tt := range tests {
		first, last := paycalc.MonthRange(tt.now)
		if got := paycalc.FormatDate(first); got != tt.wantFirst {
			t.Errorf("MonthRange(%v) first = %s, want %s", tt.now, got, tt.wantFirst)
		}
		if got := paycalc.FormatDate(last); got != tt.wantLast {
			t.Errorf("MonthRange(%v) last = %s, want %s", tt.now, got, tt.wantLast)
		}
		if first.After(last) {
			t.Errorf("MonthRange(%v): first %v after last %v", tt.now, first, last)
		}
		if first.Day() != 1 {
			t.Errorf("MonthRange(%v): first day = %d, want 1", tt.now, first.Day())
		}
		if !paycalc.SameMonth(first, tt.now) || !paycalc.SameMonth(last, tt.now) {
			t.Errorf("MonthRange(%v): range leaves the month", tt.now)
		}
	}
}

func TestMonthRangeKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 3, 31, 22, 0, 0, 0, loc)
	first, last := paycalc.MonthRange(now)
	if first.Location() != loc || last.Location() != loc {
		t.Error("MonthRange changed the location")
	}
	if paycalc.FormatDate(last) != "2025-03-31" {
		t.Errorf("last = %s, want 2025-03-31", paycalc.FormatDate(last))
	}
}

func TestMonthLabel(t *testing.T) {
	got := paycalc.MonthLabel(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	if got != "March 2025" {
		t.Errorf("MonthLabel = %q, want %q", got, "March 2025")
	}
}

func TestLongAndShortDate(t *testing.T) {
	if got := paycalc.LongDate("2025-03-03"); got != "Monday, March 3, 2025" {
		t.Errorf("LongDate = %q", got)
	}
	if got := paycalc.ShortDate("2025-03-03"); got != "Mon, Mar 3" {
		t.Errorf("ShortDate = %q", got)
	}
	if got := paycalc.LongDate("garbage"); got != "garbage" {
		t.Errorf("LongDate(garbage) = %q, want input back", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := paycalc.ParseDate("2025-03-05"); err != nil {
		t.Errorf("ParseDate valid: %v", err)
	}
	if _, err := paycalc.ParseDate("05/03/2025"); err == nil {
		t.Error("ParseDate: expected error for non ISO date")
	}
}
