package billing

import "time"

// MonthAnchor normalizes a date to the first of its month at midnight. One
// anchor represents one expected billing cycle.
func MonthAnchor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthlySchedule returns the ascending sequence of month anchors a tenant is
// expected to have paid for: the check-in month through now's month,
// inclusive. The check-in month is included even when checkIn falls mid-month.
// Months strictly after now's month never appear. Pure function; callers
// inject now so date-boundary behavior is testable.
func MonthlySchedule(checkIn, now time.Time) []time.Time {
	start := MonthAnchor(checkIn)
	end := MonthAnchor(now)
	if end.Before(start) {
		return nil
	}

	months := make([]time.Time, 0, 12)
	for anchor := start; !anchor.After(end); anchor = anchor.AddDate(0, 1, 0) {
		months = append(months, anchor)
	}
	return months
}
