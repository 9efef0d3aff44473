package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/billing"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CreateBillRequest selects one of two mutually exclusive creation modes:
// room split (RoomID set, SplitEqually true) or individual (TenantID set,
// nothing else). Any other combination is a validation error.
type CreateBillRequest struct {
	LocationID   uuid.UUID
	RoomID       *uuid.UUID
	TenantID     *uuid.UUID
	SplitEqually bool
	BillAmount   valueobject.Money
	BillDate     time.Time
	Description  string
}

// CreateBillResult reports the created records plus split arithmetic
type CreateBillResult struct {
	Bills           []billing.CurrentBill `json:"bills"`
	TotalBillAmount valueobject.Money     `json:"total_bill_amount"`
	BillPerTenant   valueobject.Money     `json:"bill_per_tenant"`
	TenantCount     int                   `json:"tenant_count"`
}

// UpdateBillRequest carries the mutable fields of a bill. Nil means leave
// unchanged.
type UpdateBillRequest struct {
	BillAmount  *valueobject.Money
	BillDate    *time.Time
	Description *string
}

// BillService creates, splits and maintains current bills under the
// one-bill-per-tenant-per-month invariant.
type BillService struct {
	roomRepo   property.RoomRepository
	tenantRepo property.TenantRepository
	billRepo   billing.CurrentBillRepository
	cache      ReportCache
	logger     *zap.Logger
}

// NewBillService creates a new BillService. cache may be nil.
func NewBillService(
	roomRepo property.RoomRepository,
	tenantRepo property.TenantRepository,
	billRepo billing.CurrentBillRepository,
	cache ReportCache,
	logger *zap.Logger,
) *BillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillService{
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
		billRepo:   billRepo,
		cache:      cache,
		logger:     logger,
	}
}

// Create validates the mode selection and dispatches to room-split or
// individual creation. Validation happens before any store access.
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*CreateBillResult, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}
	if req.RoomID != nil {
		return s.createRoomSplit(ctx, req)
	}
	return s.createIndividual(ctx, req)
}

func validateCreateRequest(req CreateBillRequest) error {
	if req.LocationID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Location ID is required")
	}
	if !req.BillAmount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Bill amount must be positive")
	}
	if req.BillDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Bill date is required")
	}

	roomMode := req.RoomID != nil && req.SplitEqually
	individualMode := req.TenantID != nil && req.RoomID == nil && !req.SplitEqually
	if roomMode == individualMode {
		return shared.NewDomainError("INVALID_INPUT",
			"Exactly one of room split (room_id with split_equally) or individual (tenant_id alone) must be selected")
	}
	if roomMode && req.TenantID != nil {
		return shared.NewDomainError("INVALID_INPUT", "Room split cannot also name a tenant")
	}
	return nil
}

// createRoomSplit partitions the amount across the room's active occupants.
// Either every occupant gets a bill for the month or none do: the duplicate
// check and all inserts run inside one store transaction (CreateAll).
func (s *BillService) createRoomSplit(ctx context.Context, req CreateBillRequest) (*CreateBillResult, error) {
	room, err := s.roomRepo.FindByIDForLocation(ctx, req.LocationID, *req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	occupants, err := s.tenantRepo.FindActiveByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupants: %w", err)
	}
	if len(occupants) == 0 {
		return nil, shared.ErrNoActiveOccupants
	}

	occupantIDs := make([]uuid.UUID, len(occupants))
	for i := range occupants {
		occupantIDs[i] = occupants[i].ID
	}

	// Early rejection for the common case; CreateAll re-checks inside the
	// transaction to close the race between concurrent split requests.
	exists, err := s.billRepo.AnyExistsForMonth(ctx, occupantIDs, req.BillDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bills: %w", err)
	}
	if exists {
		return nil, shared.ErrDuplicateBill
	}

	bills, share, err := billing.SplitBillAcross(occupantIDs, req.LocationID, req.BillAmount, req.BillDate, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.CreateAll(ctx, bills); err != nil {
		return nil, err
	}
	s.invalidate(ctx, req.LocationID)

	s.logger.Info("Room bill split created",
		zap.String("room_id", room.ID.String()),
		zap.Int("tenant_count", len(bills)),
		zap.String("total", req.BillAmount.String()),
		zap.String("per_tenant", share.String()),
	)

	created := make([]billing.CurrentBill, len(bills))
	for i, b := range bills {
		created[i] = *b
	}
	return &CreateBillResult{
		Bills:           created,
		TotalBillAmount: req.BillAmount,
		BillPerTenant:   share,
		TenantCount:     len(bills),
	}, nil
}

func (s *BillService) createIndividual(ctx context.Context, req CreateBillRequest) (*CreateBillResult, error) {
	tenant, err := s.tenantRepo.FindByIDForLocation(ctx, req.LocationID, *req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}

	bill, err := billing.NewCurrentBill(tenant.ID, req.LocationID, req.BillAmount, req.BillDate, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.CreateAll(ctx, []*billing.CurrentBill{bill}); err != nil {
		return nil, err
	}
	s.invalidate(ctx, req.LocationID)

	return &CreateBillResult{
		Bills:           []billing.CurrentBill{*bill},
		TotalBillAmount: req.BillAmount,
		BillPerTenant:   req.BillAmount,
		TenantCount:     1,
	}, nil
}

// Get returns one bill by ID
func (s *BillService) Get(ctx context.Context, id uuid.UUID) (*billing.CurrentBill, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.ErrNotFound
	}
	return bill, nil
}

// List returns a page of a location's bills
func (s *BillService) List(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]billing.CurrentBill, int64, error) {
	return s.billRepo.FindAllForLocation(ctx, locationID, filter)
}

// ListByMonth returns a location's bills covering one calendar month
func (s *BillService) ListByMonth(ctx context.Context, locationID uuid.UUID, month time.Month, year int) ([]billing.CurrentBill, error) {
	if month < time.January || month > time.December {
		return nil, shared.NewDomainError("INVALID_INPUT", "Month must be between 1 and 12")
	}
	return s.billRepo.FindByMonth(ctx, locationID, month, year)
}

// Update patches a bill's amount, date or description. Moving the bill to a
// different calendar month re-checks the one-bill-per-month invariant.
func (s *BillService) Update(ctx context.Context, id uuid.UUID, req UpdateBillRequest) (*billing.CurrentBill, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BillAmount != nil {
		if !req.BillAmount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Bill amount must be positive")
		}
		bill.BillAmount = *req.BillAmount
	}
	if req.BillDate != nil {
		if req.BillDate.IsZero() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Bill date must be a valid date")
		}
		if !bill.CoversMonth(*req.BillDate) {
			exists, err := s.billRepo.AnyExistsForMonth(ctx, []uuid.UUID{bill.TenantID}, *req.BillDate)
			if err != nil {
				return nil, fmt.Errorf("failed to check existing bills: %w", err)
			}
			if exists {
				return nil, shared.ErrDuplicateBill
			}
		}
		bill.BillDate = *req.BillDate
	}
	if req.Description != nil {
		bill.Description = *req.Description
	}
	bill.Touch()

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}
	s.invalidate(ctx, bill.LocationID)
	return bill, nil
}

// Delete soft-deletes a bill; the tombstone keeps the row out of every
// subsequent read and duplicate-month check.
func (s *BillService) Delete(ctx context.Context, id uuid.UUID) error {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.billRepo.Delete(ctx, bill.ID); err != nil {
		return err
	}
	s.invalidate(ctx, bill.LocationID)
	return nil
}

func (s *BillService) invalidate(ctx context.Context, locationID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, locationID)
	}
}
