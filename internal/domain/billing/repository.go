package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
)

// RentPaymentRepository persists monthly rent payment records. Every read
// excludes soft-deleted rows; tombstoned records must never reach the
// matcher or classifier.
type RentPaymentRepository interface {
	// FindByTenant returns the tenant's records ordered by payment date
	// descending, the order the matcher expects.
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]RentPayment, error)
	// FindDueOn returns unsettled records of a location whose due date
	// (period end) falls on the given calendar day.
	FindDueOn(ctx context.Context, locationID uuid.UUID, day time.Time) ([]RentPayment, error)
	// FindOverdue returns unsettled records of a location whose due date has
	// passed as of now.
	FindOverdue(ctx context.Context, locationID uuid.UUID, now time.Time) ([]RentPayment, error)
	Save(ctx context.Context, payment *RentPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CurrentBillRepository persists shared/current bills. CreateAll is the
// transactional entry point used by the bill splitter: the duplicate-month
// existence check and all inserts must share one transaction so two
// concurrent split requests cannot both pass the check.
type CurrentBillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CurrentBill, error)
	FindAllForLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]CurrentBill, int64, error)
	FindByMonth(ctx context.Context, locationID uuid.UUID, month time.Month, year int) ([]CurrentBill, error)
	// AnyExistsForMonth reports whether any of the tenants already carries a
	// non-tombstoned bill in the calendar month of billDate.
	AnyExistsForMonth(ctx context.Context, tenantIDs []uuid.UUID, billDate time.Time) (bool, error)
	// CreateAll atomically re-checks the duplicate-month invariant and
	// inserts every bill, or none. A conflict surfaces as
	// shared.ErrDuplicateBill with zero rows written.
	CreateAll(ctx context.Context, bills []*CurrentBill) error
	Update(ctx context.Context, bill *CurrentBill) error
	Delete(ctx context.Context, id uuid.UUID) error
}
