package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
)

// MonthState classifies one scheduled month after matching
type MonthState string

const (
	MonthPaid    MonthState = "PAID"
	MonthPartial MonthState = "PARTIAL"
	MonthPending MonthState = "PENDING"
	MonthMissing MonthState = "MISSING"
)

// OverallStatus is the rolled-up payment state of a tenant.
// Precedence, highest first: MISSING_PAYMENTS > PARTIAL_PAYMENTS > PENDING > PAID.
type OverallStatus string

const (
	OverallMissingPayments OverallStatus = "MISSING_PAYMENTS"
	OverallPartialPayments OverallStatus = "PARTIAL_PAYMENTS"
	OverallPending         OverallStatus = "PENDING"
	OverallPaid            OverallStatus = "PAID"
)

// MonthDue is the classification of one scheduled month with its outstanding
// amount.
type MonthDue struct {
	Anchor    time.Time         `json:"month"`
	State     MonthState        `json:"state"`
	DueAmount valueobject.Money `json:"due_amount"`
	Payment   *RentPayment      `json:"-"`
}

// TenantReconciliation is the derived expected-vs-actual view for one tenant.
// It is computed on demand and never persisted.
type TenantReconciliation struct {
	TenantID        uuid.UUID         `json:"tenant_id"`
	MissingMonths   []MonthDue        `json:"missing_months"`
	UnsettledMonths []MonthDue        `json:"unsettled_months"`
	LatestPayment   *RentPayment      `json:"latest_payment,omitempty"`
	OverallStatus   OverallStatus     `json:"overall_status"`
	TotalDue        valueobject.Money `json:"total_due"`
}

// HasIssues reports whether the tenant belongs in a pending-payments report:
// at least one missing month, at least one partial or pending month, or a
// latest record that is itself partial or pending.
func (r *TenantReconciliation) HasIssues() bool {
	if len(r.MissingMonths) > 0 || len(r.UnsettledMonths) > 0 {
		return true
	}
	if r.LatestPayment != nil {
		switch r.LatestPayment.Status {
		case PaymentStatusPartial, PaymentStatusPending:
			return true
		}
	}
	return false
}

// Reconcile runs the full schedule-match-classify pipeline for one tenant.
//
// payments must be the tenant's non-tombstoned records ordered by payment
// date descending; roomRent is the room's current monthly rent. Rooms
// without a positive rent cannot produce an obligation: the caller gets
// ErrRentNotConfigured and skips the tenant.
func Reconcile(
	tenantID uuid.UUID,
	checkIn time.Time,
	roomRent valueobject.Money,
	payments []RentPayment,
	now time.Time,
) (*TenantReconciliation, error) {
	if !roomRent.IsPositive() {
		return nil, shared.ErrRentNotConfigured
	}

	rec := &TenantReconciliation{
		TenantID:      tenantID,
		OverallStatus: OverallPaid,
		TotalDue:      valueobject.ZeroINR(),
	}
	if len(payments) > 0 {
		rec.LatestPayment = &payments[0]
	}

	matched := MatchPayments(payments)
	nowAnchor := MonthAnchor(now)

	for _, anchor := range MonthlySchedule(checkIn, now) {
		if anchor.After(nowAnchor) {
			continue
		}

		record, ok := matched[MonthKeyOf(anchor)]
		if !ok {
			due := MonthDue{Anchor: anchor, State: MonthMissing, DueAmount: roomRent}
			rec.MissingMonths = append(rec.MissingMonths, due)
			rec.TotalDue = rec.TotalDue.MustAdd(roomRent)
			continue
		}

		switch record.Status {
		case PaymentStatusPaid:
			// Fully settled, contributes nothing.
		case PaymentStatusPending:
			// Counted toward the total only through the latest-record
			// term below, never here.
			rec.UnsettledMonths = append(rec.UnsettledMonths, MonthDue{
				Anchor:    anchor,
				State:     MonthPending,
				DueAmount: record.ActualRentAmount,
				Payment:   record,
			})
		case PaymentStatusPartial:
			due := record.ActualRentAmount.MustSubtract(record.AmountPaid)
			rec.UnsettledMonths = append(rec.UnsettledMonths, MonthDue{
				Anchor:    anchor,
				State:     MonthPartial,
				DueAmount: due,
				Payment:   record,
			})
			rec.TotalDue = rec.TotalDue.MustAdd(due)
		default:
			// FAILED and REFUNDED records mean the month's rent was never
			// received: the full current rent is due again.
			due := MonthDue{Anchor: anchor, State: MonthMissing, DueAmount: roomRent, Payment: record}
			rec.MissingMonths = append(rec.MissingMonths, due)
			rec.TotalDue = rec.TotalDue.MustAdd(roomRent)
		}
	}

	if rec.LatestPayment != nil && rec.LatestPayment.Status == PaymentStatusPending {
		rec.TotalDue = rec.TotalDue.MustAdd(rec.LatestPayment.ActualRentAmount)
	}

	rec.OverallStatus = rec.deriveOverallStatus()
	return rec, nil
}

func (r *TenantReconciliation) deriveOverallStatus() OverallStatus {
	if len(r.MissingMonths) > 0 {
		return OverallMissingPayments
	}
	hasPartial := false
	hasPending := false
	for _, m := range r.UnsettledMonths {
		switch m.State {
		case MonthPartial:
			hasPartial = true
		case MonthPending:
			hasPending = true
		}
	}
	if r.LatestPayment != nil {
		switch r.LatestPayment.Status {
		case PaymentStatusPartial:
			hasPartial = true
		case PaymentStatusPending:
			hasPending = true
		}
	}
	if hasPartial {
		return OverallPartialPayments
	}
	if hasPending {
		return OverallPending
	}
	return OverallPaid
}
