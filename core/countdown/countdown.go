// Package countdown computes how far away dated items are.
//
// Everything works at calendar-day granularity: "now" is reduced to today's date in
// NowFunc's location before comparing, so a deadline due today has 0 days left for the
// whole day and becomes overdue at midnight.
package countdown

import (
	"sort"
	"time"

	"github.com/trezcool/phoebuz/core"
)

var NowFunc = time.Now // mockable

// Dated is anything with a single date used for countdowns
// (the due date of homework, the date of calendar events).
type Dated interface {
	EffectiveDate() core.Date
}

// Today returns the current date.
func Today() core.Date {
	return core.DateOf(NowFunc())
}

// DaysLeft returns the number of days from today until d; negative once d has passed.
func DaysLeft(d core.Date) int {
	return d.Ordinal() - Today().Ordinal()
}

func IsOverdue(d core.Date) bool {
	return DaysLeft(d) < 0
}

func IsToday(d core.Date) bool {
	return d == Today()
}

func IsTomorrow(d core.Date) bool {
	return d == Today().AddDays(1)
}

// NextUpcoming returns the item with the earliest effective date that is not in the past.
// Among items sharing that date the first one in items wins.
func NextUpcoming[T Dated](items []T) (T, bool) {
	var (
		next  T
		found bool
	)
	for _, item := range items {
		if DaysLeft(item.EffectiveDate()) < 0 {
			continue
		}
		if !found || item.EffectiveDate().Before(next.EffectiveDate()) {
			next = item
			found = true
		}
	}
	return next, found
}

// SortByDaysLeft stably sorts items by their effective date, soonest first.
func SortByDaysLeft[T Dated](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EffectiveDate().Before(items[j].EffectiveDate())
	})
}

// FormatDate renders d like "Mon, Jan 2, 2006".
func FormatDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("Mon, Jan 2, 2006")
}

// Urgency buckets
const (
	UrgencyOverdue  = "overdue"
	UrgencyCritical = "critical" // today or tomorrow
	UrgencySoon     = "soon"     // within 3 days
	UrgencyNormal   = "normal"
)

func Urgency(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return UrgencyOverdue
	case daysLeft <= 1:
		return UrgencyCritical
	case daysLeft <= 3:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}
