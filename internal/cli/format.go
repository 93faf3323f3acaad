package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Currency formats a whole-unit rupiah amount with dot thousand separators,
// e.g. 25000 -> "Rp 25.000". Amounts carry no fractional cents.
func Currency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(int64(amount+0.5), 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := "Rp " + strings.Join(groups, ".")
	if negative {
		return "-" + formatted
	}
	return formatted
}

// FormatDate renders a date for listings, e.g. "15 Jan 2024".
func FormatDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return fmt.Sprintf("%s…", string(runes[:max-1]))
}
