package billing

import "time"

// MonthKey identifies one calendar month of one year
type MonthKey struct {
	Month time.Month
	Year  int
}

// MonthKeyOf returns the key for the month containing t
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Month: t.Month(), Year: t.Year()}
}

// MatchPayments collapses a tenant's payment records into a single
// representative record per calendar month, keyed by the month of
// PeriodStart.
//
// Tie-break when multiple records land in the same month: a record whose
// status is not PAID wins over a PAID one. Duplicate rows come from
// corrections and retries, and picking "most recent" would let a
// later-but-unrelated fully-paid record hide outstanding debt. Among records
// on the same side of that rule, the first one encountered wins; callers pass
// records ordered by payment date descending, so that is the most recent.
func MatchPayments(payments []RentPayment) map[MonthKey]*RentPayment {
	matched := make(map[MonthKey]*RentPayment, len(payments))
	for i := range payments {
		p := &payments[i]
		key := MonthKeyOf(p.PeriodStart)

		existing, ok := matched[key]
		if !ok {
			matched[key] = p
			continue
		}
		// An unresolved record must never be displaced by a PAID one.
		if existing.Status == PaymentStatusPaid && p.Status != PaymentStatusPaid {
			matched[key] = p
		}
	}
	return matched
}
