package paycalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/caregiver-hours/internal/model"
)

// HourlyRate is the fixed pay per hour worked.
var HourlyRate = decimal.NewFromInt(30)

var (
	// ErrInvalidHours is returned when the hours field is not a non-negative number.
	ErrInvalidHours = errors.New("hours must be a non-negative number")
	// ErrInvalidExpenses is returned for negative expenses.
	ErrInvalidExpenses = errors.New("expenses must not be negative")
)

// Totals aggregates a set of entries.
type Totals struct {
	TotalHours    decimal.Decimal
	TotalPay      decimal.Decimal
	TotalExpenses decimal.Decimal
}

// PayFor returns hours * HourlyRate rounded to two decimal places.
func PayFor(hours float64) decimal.Decimal {
	return decimal.NewFromFloat(hours).Mul(HourlyRate).Round(2)
}

// ComputeTotals sums hours and expenses. An empty slice yields zero totals.
func ComputeTotals(entries []model.Entry) Totals {
	hours := decimal.Zero
	expenses := decimal.Zero
	for _, e := range entries {
		hours = hours.Add(decimal.NewFromFloat(e.Hours))
		expenses = expenses.Add(decimal.NewFromFloat(e.Expenses))
	}
	return Totals{
		TotalHours:    hours,
		TotalPay:      hours.Mul(HourlyRate),
		TotalExpenses: expenses,
	}
}

// FormatMoney renders an amount with two decimals, without currency sign.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatHours renders hours in their shortest form, e.g. "8" or "7.5".
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// ParseHours parses the raw hours field of a draft.
func ParseHours(raw string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHours, raw)
	}
	return h, nil
}

// ParseExpenses parses the raw expenses field of a draft. Empty or
// unparseable input yields 0.
func ParseExpenses(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, nil
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidExpenses, raw)
	}
	return v, nil
}
