package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
)

// PaymentStatus is the recorded state of one monthly rent payment
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPartial, PaymentStatusPending,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// IsSettled reports whether the record represents a fully resolved month.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid
}

// RentPayment is one month-of-intent rent record for a tenant. The store
// permits multiple records for the same calendar month (corrections, retries);
// the matcher collapses them before classification.
type RentPayment struct {
	shared.BaseEntity
	TenantID         uuid.UUID
	LocationID       uuid.UUID
	AmountPaid       valueobject.Money
	ActualRentAmount valueobject.Money
	PaymentDate      time.Time
	Status           PaymentStatus
	PeriodStart      time.Time
	// PeriodEnd doubles as the due date for the covered period; the
	// due-soon and overdue reminder windows filter on it.
	PeriodEnd time.Time
	Method    string
	Reference string
}

// NewRentPayment creates a rent payment record for the month containing
// periodStart.
func NewRentPayment(
	tenantID, locationID uuid.UUID,
	amountPaid, actualRent valueobject.Money,
	paymentDate time.Time,
	status PaymentStatus,
	periodStart, periodEnd time.Time,
) (*RentPayment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown payment status")
	}
	if amountPaid.IsNegative() || actualRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amounts cannot be negative")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Period end cannot precede period start")
	}
	return &RentPayment{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		LocationID:       locationID,
		AmountPaid:       amountPaid,
		ActualRentAmount: actualRent,
		PaymentDate:      paymentDate,
		Status:           status,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
	}, nil
}

// Outstanding is the unpaid remainder for this record: actual rent minus
// amount paid, floored at zero for PAID records.
func (p *RentPayment) Outstanding() valueobject.Money {
	switch p.Status {
	case PaymentStatusPaid:
		return valueobject.ZeroINR()
	case PaymentStatusPending:
		// Amount paid is treated as zero until the pending payment clears.
		return p.ActualRentAmount
	default:
		return p.ActualRentAmount.MustSubtract(p.AmountPaid)
	}
}
