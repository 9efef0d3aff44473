package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/billing"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// TenantPendingView pairs a tenant's identity with their reconciliation
type TenantPendingView struct {
	TenantID      uuid.UUID                      `json:"tenant_id"`
	TenantName    string                         `json:"tenant_name"`
	Phone         string                         `json:"phone,omitempty"`
	RoomID        uuid.UUID                      `json:"room_id"`
	RoomNumber    string                         `json:"room_number"`
	RentPrice     valueobject.Money              `json:"rent_price"`
	Reconciliation *billing.TenantReconciliation `json:"reconciliation"`
}

// ReportSummary is the roll-up block returned alongside the tenant list
type ReportSummary struct {
	TotalTenants          int               `json:"total_tenants"`
	TotalPendingAmount    valueobject.Money `json:"total_pending_amount"`
	OverdueTenants        int               `json:"overdue_tenants"`
	PartialPaymentTenants int               `json:"partial_payment_tenants"`
}

// PendingPaymentsReport is the full property-level reconciliation report.
// It is a pure function of the store contents and the as-of date: rerunning
// with no intervening writes yields an identical report.
type PendingPaymentsReport struct {
	LocationID     uuid.UUID                     `json:"location_id"`
	AsOf           time.Time                     `json:"as_of"`
	Tenants        []TenantPendingView           `json:"tenants"`
	CountsByStatus map[billing.OverallStatus]int `json:"counts_by_status"`
	TotalDue       valueobject.Money             `json:"total_due"`
	Summary        ReportSummary                 `json:"summary"`
}

// DueTenant is one entry of the date-windowed due/overdue views
type DueTenant struct {
	TenantID   uuid.UUID             `json:"tenant_id"`
	TenantName string                `json:"tenant_name"`
	DueDate    time.Time             `json:"due_date"`
	DueAmount  valueobject.Money     `json:"due_amount"`
	Status     billing.PaymentStatus `json:"status"`
}

// PendingPaymentService reconstructs the expected-vs-actual rent position of
// every active tenant of a property.
type PendingPaymentService struct {
	tenantRepo  property.TenantRepository
	roomRepo    property.RoomRepository
	paymentRepo billing.RentPaymentRepository
	cache       ReportCache
	logger      *zap.Logger
}

// NewPendingPaymentService creates a new PendingPaymentService. cache may be
// nil; reports are then always recomputed.
func NewPendingPaymentService(
	tenantRepo property.TenantRepository,
	roomRepo property.RoomRepository,
	paymentRepo billing.RentPaymentRepository,
	cache ReportCache,
	logger *zap.Logger,
) *PendingPaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PendingPaymentService{
		tenantRepo:  tenantRepo,
		roomRepo:    roomRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Report aggregates reconciliations across all active tenants of a location.
// Tenants whose room has no resolvable rent are skipped, never fail the
// report. now is caller-injected so date boundaries are testable.
func (s *PendingPaymentService) Report(ctx context.Context, locationID uuid.UUID, now time.Time) (*PendingPaymentsReport, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, locationID); ok {
			return cached, nil
		}
	}

	tenants, err := s.tenantRepo.FindActiveForLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active tenants: %w", err)
	}

	report := &PendingPaymentsReport{
		LocationID:     locationID,
		AsOf:           now,
		Tenants:        make([]TenantPendingView, 0, len(tenants)),
		CountsByStatus: make(map[billing.OverallStatus]int),
		TotalDue:       valueobject.ZeroINR(),
	}

	for i := range tenants {
		tenant := &tenants[i]
		view, err := s.reconcileTenant(ctx, tenant, now)
		if err != nil {
			if errors.Is(err, shared.ErrRentNotConfigured) || errors.Is(err, shared.ErrNotFound) {
				s.logger.Debug("Skipping tenant without resolvable rent",
					zap.String("tenant_id", tenant.ID.String()),
				)
				continue
			}
			return nil, err
		}

		report.CountsByStatus[view.Reconciliation.OverallStatus]++
		report.Summary.TotalTenants++
		if view.Reconciliation.HasIssues() {
			report.Tenants = append(report.Tenants, *view)
			report.TotalDue = report.TotalDue.MustAdd(view.Reconciliation.TotalDue)
		}
	}

	report.Summary.TotalPendingAmount = report.TotalDue
	report.Summary.OverdueTenants = report.CountsByStatus[billing.OverallMissingPayments]
	report.Summary.PartialPaymentTenants = report.CountsByStatus[billing.OverallPartialPayments]

	if s.cache != nil {
		s.cache.Set(ctx, locationID, report)
	}
	return report, nil
}

// TenantView reconciles a single tenant of a location
func (s *PendingPaymentService) TenantView(ctx context.Context, locationID, tenantID uuid.UUID, now time.Time) (*TenantPendingView, error) {
	tenant, err := s.tenantRepo.FindByIDForLocation(ctx, locationID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}
	return s.reconcileTenant(ctx, tenant, now)
}

// DueTomorrow returns tenants whose next due date is exactly one day out.
// This is a thin date filter over payment records, not a full
// reconciliation; it backs the reminder surface, not the ledger.
func (s *PendingPaymentService) DueTomorrow(ctx context.Context, locationID uuid.UUID, now time.Time) ([]DueTenant, error) {
	return s.dueOn(ctx, locationID, now.AddDate(0, 0, 1))
}

// DueInDays returns tenants whose due date falls exactly the given number of
// days after now. The due-soon reminder job uses a three day window.
func (s *PendingPaymentService) DueInDays(ctx context.Context, locationID uuid.UUID, now time.Time, days int) ([]DueTenant, error) {
	return s.dueOn(ctx, locationID, now.AddDate(0, 0, days))
}

// Overdue returns tenants with an unsettled record whose due date has passed
func (s *PendingPaymentService) Overdue(ctx context.Context, locationID uuid.UUID, now time.Time) ([]DueTenant, error) {
	payments, err := s.paymentRepo.FindOverdue(ctx, locationID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue payments: %w", err)
	}
	return s.toDueTenants(ctx, payments)
}

func (s *PendingPaymentService) dueOn(ctx context.Context, locationID uuid.UUID, day time.Time) ([]DueTenant, error) {
	payments, err := s.paymentRepo.FindDueOn(ctx, locationID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query due payments: %w", err)
	}
	return s.toDueTenants(ctx, payments)
}

func (s *PendingPaymentService) toDueTenants(ctx context.Context, payments []billing.RentPayment) ([]DueTenant, error) {
	due := make([]DueTenant, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		tenant, err := s.tenantRepo.FindByID(ctx, p.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil || !tenant.IsActive() {
			continue
		}
		due = append(due, DueTenant{
			TenantID:   tenant.ID,
			TenantName: tenant.Name,
			DueDate:    p.PeriodEnd,
			DueAmount:  p.Outstanding(),
			Status:     p.Status,
		})
	}
	return due, nil
}

func (s *PendingPaymentService) reconcileTenant(ctx context.Context, tenant *property.Tenant, now time.Time) (*TenantPendingView, error) {
	room, err := s.roomRepo.FindByID(ctx, tenant.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}
	if !room.HasRentConfigured() {
		return nil, shared.ErrRentNotConfigured
	}

	payments, err := s.paymentRepo.FindByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	rec, err := billing.Reconcile(tenant.ID, tenant.CheckInDate, room.RentPrice, payments, now)
	if err != nil {
		return nil, err
	}

	return &TenantPendingView{
		TenantID:       tenant.ID,
		TenantName:     tenant.Name,
		Phone:          tenant.Phone,
		RoomID:         room.ID,
		RoomNumber:     room.RoomNumber,
		RentPrice:      room.RentPrice,
		Reconciliation: rec,
	}, nil
}
