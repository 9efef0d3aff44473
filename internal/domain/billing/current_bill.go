package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
)

// CurrentBill is a non-rent charge (utilities and the like) billed to one
// tenant. BillDate identifies the calendar month the charge covers. A tenant
// carries at most one bill per calendar month; creation enforces it.
type CurrentBill struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	LocationID  uuid.UUID
	BillAmount  valueobject.Money
	BillDate    time.Time
	Description string
}

// NewCurrentBill creates a bill charged to one tenant for the month
// containing billDate.
func NewCurrentBill(
	tenantID, locationID uuid.UUID,
	amount valueobject.Money,
	billDate time.Time,
	description string,
) (*CurrentBill, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bill amount must be positive")
	}
	if billDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bill date is required")
	}
	return &CurrentBill{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		LocationID:  locationID,
		BillAmount:  amount,
		BillDate:    billDate,
		Description: description,
	}, nil
}

// CoversMonth reports whether this bill falls in the calendar month of t
func (b *CurrentBill) CoversMonth(t time.Time) bool {
	return MonthKeyOf(b.BillDate) == MonthKeyOf(t)
}

// SplitBillAcross creates one bill per occupant, each carrying the literal
// per-head quotient of total (total / n truncated to 2 places). The shares
// may undershoot the total by a sub-unit rounding residue; that is observed,
// accepted behavior and must not be silently corrected by redistributing
// cents. Duplicate-month checking and transactional creation belong to the
// caller.
func SplitBillAcross(
	occupantIDs []uuid.UUID,
	locationID uuid.UUID,
	total valueobject.Money,
	billDate time.Time,
	description string,
) ([]*CurrentBill, valueobject.Money, error) {
	if len(occupantIDs) == 0 {
		return nil, valueobject.Money{}, shared.ErrNoActiveOccupants
	}
	if !total.IsPositive() {
		return nil, valueobject.Money{}, shared.NewDomainError("INVALID_INPUT", "Bill amount must be positive")
	}

	share, err := total.SplitShare(int64(len(occupantIDs)))
	if err != nil {
		return nil, valueobject.Money{}, err
	}

	bills := make([]*CurrentBill, 0, len(occupantIDs))
	for _, tenantID := range occupantIDs {
		bill, err := NewCurrentBill(tenantID, locationID, share, billDate, description)
		if err != nil {
			return nil, valueobject.Money{}, err
		}
		bills = append(bills, bill)
	}
	return bills, share, nil
}
