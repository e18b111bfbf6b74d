// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
)

// FormatAmount formats a monetary value with the configured currency symbol.
func FormatAmount(v float64, currency string) string {
	if v >= 1000 {
		whole := int64(v)
		frac := int(math.Round((v - float64(whole)) * 100))
		if frac >= 100 {
			whole++
			frac -= 100
		}
		return fmt.Sprintf("%s%s.%02d", currency, FormatNumber(whole), frac)
	}
	return fmt.Sprintf("%s%.2f", currency, v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders a calendar date for display.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

// FormatEndDate renders an optional end date, "open" when absent.
func FormatEndDate(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return FormatDate(*t)
}

// FormatCycle renders a billing cycle.
func FormatCycle(c model.Cycle) string {
	switch c {
	case model.CycleYearly:
		return "yearly"
	default:
		return "monthly"
	}
}

// FormatMonthLabel renders a month-grid header label: the month abbreviation,
// or the year at each January so year boundaries stay visible.
func FormatMonthLabel(t time.Time) string {
	if t.Month() == time.January {
		return t.Format("2006")
	}
	return t.Format("Jan")
}
