package maintenance

import (
	"fmt"
	"math"
)

// FormatMilesRemaining renders a miles-remaining result for display. The
// not-ok sentinel (no oil change on record) reads as "Unknown"; zero reads as
// "Overdue!".
func FormatMilesRemaining(miles float64, ok bool) string {
	if !ok {
		return "Unknown"
	}
	if miles <= 0 {
		return "Overdue!"
	}
	return fmt.Sprintf("%d mi", int(math.Round(miles)))
}

// FormatDaysRemaining renders a days-remaining result for display in weeks.
func FormatDaysRemaining(days float64, ok bool) string {
	if !ok {
		return "Unknown"
	}
	if days <= 0 {
		return "Overdue!"
	}
	if days < 7 {
		return "Less than a week"
	}

	weeks := math.Round(days / 7)
	if weeks < 1 {
		weeks = 1
	}
	if weeks == 1 {
		return "~1 week"
	}
	return fmt.Sprintf("~%d weeks", int(weeks))
}
