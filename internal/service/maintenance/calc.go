// Package maintenance holds the pure date/mileage arithmetic behind the
// maintenance outlook: weekly mileage averaging, oil-change projections, and
// the display formatting of their results. Every function is deterministic
// and side-effect free; missing history degrades to sentinel results instead
// of errors.
package maintenance

import (
	"math"
	"sort"
	"time"

	"github.com/mbodji/autodiag/internal/domain/models"
)

// DefaultOilChangeInterval is the fallback service interval in miles.
const DefaultOilChangeInterval = 5000

// recentWindow is the lookback used to prefer fresh driving habits over the
// full recorded history.
const recentWindow = 28 * 24 * time.Hour

// WeeklyMileageAverage estimates miles driven per week from dated odometer
// readings. Entries within the last four weeks of now are preferred; when
// fewer than two of them exist the full history is used instead. Fewer than
// two entries overall, or a non-positive date span, yields 0.
func WeeklyMileageAverage(entries []models.MileageEntry, now time.Time) float64 {
	if len(entries) < 2 {
		return 0
	}

	sorted := make([]models.MileageEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	cutoff := now.Add(-recentWindow)
	var recent []models.MileageEntry
	for _, e := range sorted {
		if !e.Date.Before(cutoff) {
			recent = append(recent, e)
		}
	}

	if len(recent) >= 2 {
		return weeklyRate(recent)
	}
	return weeklyRate(sorted)
}

// weeklyRate computes the rounded weekly rate across a date-sorted span.
func weeklyRate(sorted []models.MileageEntry) float64 {
	first := sorted[0]
	last := sorted[len(sorted)-1]

	days := last.Date.Sub(first.Date).Hours() / 24
	if days <= 0 {
		return 0
	}

	return math.Round((last.Mileage - first.Mileage) / days * 7)
}

// MilesUntilOilChange returns the miles left before the next oil change is
// due, clamped at zero, given the current odometer reading and the service
// history. The second return is false when no prior oil change is on record,
// which callers must surface as "unknown" rather than zero. A non-positive
// interval selects DefaultOilChangeInterval.
func MilesUntilOilChange(current float64, events []models.MaintenanceEvent, interval float64) (float64, bool) {
	if interval <= 0 {
		interval = DefaultOilChangeInterval
	}

	last, ok := lastOilChange(events)
	if !ok {
		return 0, false
	}

	remaining := interval - (current - last.Mileage)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// lastOilChange finds the most recent oil-change event by date.
func lastOilChange(events []models.MaintenanceEvent) (models.MaintenanceEvent, bool) {
	var last models.MaintenanceEvent
	found := false
	for _, e := range events {
		if e.Type != models.MaintenanceOilChange {
			continue
		}
		if !found || e.Date.After(last.Date) {
			last = e
			found = true
		}
	}
	return last, found
}

// DaysUntilOilChange converts miles remaining into days at the daily rate
// implied by the weekly average. A non-positive average means the rate is
// unknown and the second return is false.
func DaysUntilOilChange(milesRemaining, weeklyAverage float64) (float64, bool) {
	if weeklyAverage <= 0 {
		return 0, false
	}
	return milesRemaining / (weeklyAverage / 7), true
}
