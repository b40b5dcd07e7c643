// Package calendar does civil-date arithmetic. Dates are represented as
// time.Time at midnight UTC so values scanned from DATE columns compare directly.
package calendar

import "time"

const layout = "2006-01-02"

// DateOf returns the calendar day of t in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc))
}

// Parse parses "YYYY-MM-DD".
func Parse(s string) (time.Time, error) {
	return time.Parse(layout, s)
}

// Format renders a date as "YYYY-MM-DD".
func Format(t time.Time) string {
	return t.Format(layout)
}

// Days returns every date from 'from' to 'to' inclusive. It returns nil when to is before from.
func Days(from, to time.Time) []time.Time {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthRange returns the first and last day of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// YearRange returns January 1 and December 31 of year.
func YearRange(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Within reports whether from <= d <= to, comparing calendar days.
func Within(d, from, to time.Time) bool {
	d = DateOf(d)
	return !d.Before(DateOf(from)) && !d.After(DateOf(to))
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !DateOf(aFrom).After(DateOf(bTo)) && !DateOf(bFrom).After(DateOf(aTo))
}

// Set is a set of calendar days.
type Set map[time.Time]bool

// NewSet builds a Set from dates.
func NewSet(dates ...time.Time) Set {
	s := make(Set, len(dates))
	for _, d := range dates {
		s[DateOf(d)] = true
	}
	return s
}

// Has reports whether d is in the set.
func (s Set) Has(d time.Time) bool {
	return s[DateOf(d)]
}
