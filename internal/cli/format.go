package cli

import (
	"fmt"
	"math"
	"time"

	"tradebook/pkg/utils"
)

// FormatPrice formats a price with the rupee symbol.
func FormatPrice(price float64) string {
	return utils.FormatIndianCurrency(price)
}

// FormatTime formats a time in the standard display format.
func FormatTime(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatDate formats a date in the standard display format.
func FormatDate(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// FormatDateTime formats a timestamp in the standard display format.
func FormatDateTime(t time.Time) string {
	return t.Format("02-Jan-2006 15:04:05")
}

// TruncateString truncates a string to maxLen with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatProfitFactor formats a profit factor, handling the no-loss case.
func FormatProfitFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", pf)
}
