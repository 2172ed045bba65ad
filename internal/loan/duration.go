package loan

import (
	"fmt"
	"strings"
)

// SplitPeriods converts a month count into whole years and remaining months.
func SplitPeriods(periods int) (years, months int) {
	return periods / 12, periods % 12
}

// FormatDuration renders a month count as "1 year and 3 months", "2 years",
// "5 months". Zero components are left out.
func FormatDuration(periods int) string {
	years, months := SplitPeriods(periods)

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if len(parts) == 0 {
		return plural(0, "month")
	}
	return strings.Join(parts, " and ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
