// Package reconciliation contains the credit charge reconciliation use cases.
package reconciliation

import "time"

const hoursPerDay = 24

// calendarDate truncates a time to its calendar date in UTC.
func calendarDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dayDiff returns the number of calendar days from `from` to `to`.
// Positive when `to` is after `from`.
func dayDiff(from, to time.Time) int {
	return int(calendarDate(to).Sub(calendarDate(from)).Hours() / hoursPerDay)
}
