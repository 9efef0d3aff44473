package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
)

// CreateTenantRequest checks a new tenant into a room
type CreateTenantRequest struct {
	LocationID  uuid.UUID
	RoomID      uuid.UUID
	BedNumber   string
	Name        string
	Phone       string
	Email       string
	CheckInDate time.Time
}

// UpdateTenantRequest carries the mutable fields of a tenant. Nil means leave
// unchanged. Status transitions ACTIVE<->INACTIVE; an inactive tenant stops
// accruing rent from the next reconciliation run.
type UpdateTenantRequest struct {
	RoomID      *uuid.UUID
	BedNumber   *string
	Name        *string
	Phone       *string
	Email       *string
	CheckInDate *time.Time
	Status      *property.TenantStatus
}

// TenantService manages tenant lifecycle: check-in, room moves, check-out
type TenantService struct {
	tenantRepo property.TenantRepository
	roomRepo   property.RoomRepository
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo property.TenantRepository,
	roomRepo property.RoomRepository,
	logger *zap.Logger,
) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo: tenantRepo,
		roomRepo:   roomRepo,
		logger:     logger,
	}
}

// Create checks a tenant into a room of the location
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*property.Tenant, error) {
	room, err := s.roomRepo.FindByIDForLocation(ctx, req.LocationID, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found in this location")
	}

	tenant, err := property.NewTenant(req.LocationID, req.RoomID, req.Name, req.Phone, req.CheckInDate)
	if err != nil {
		return nil, err
	}
	tenant.BedNumber = req.BedNumber
	tenant.Email = req.Email

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.logger.Info("Tenant checked in",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("room_id", req.RoomID.String()),
		zap.Time("check_in_date", tenant.CheckInDate),
	)
	return tenant, nil
}

// Get returns one tenant of a location
func (s *TenantService) Get(ctx context.Context, locationID, id uuid.UUID) (*property.Tenant, error) {
	tenant, err := s.tenantRepo.FindByIDForLocation(ctx, locationID, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

// List returns a page of a location's tenants
func (s *TenantService) List(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]property.Tenant, int64, error) {
	return s.tenantRepo.FindAllForLocation(ctx, locationID, filter)
}

// Update patches a tenant's details, room assignment or status
func (s *TenantService) Update(ctx context.Context, locationID, id uuid.UUID, req UpdateTenantRequest) (*property.Tenant, error) {
	tenant, err := s.Get(ctx, locationID, id)
	if err != nil {
		return nil, err
	}

	if req.RoomID != nil && *req.RoomID != tenant.RoomID {
		room, err := s.roomRepo.FindByIDForLocation(ctx, locationID, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if room == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Room not found in this location")
		}
		bedNumber := tenant.BedNumber
		if req.BedNumber != nil {
			bedNumber = *req.BedNumber
		}
		if err := tenant.MoveToRoom(*req.RoomID, bedNumber); err != nil {
			return nil, err
		}
	} else if req.BedNumber != nil {
		tenant.BedNumber = *req.BedNumber
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Tenant name is required")
		}
		tenant.Name = *req.Name
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.Email != nil {
		tenant.Email = *req.Email
	}
	if req.CheckInDate != nil {
		if req.CheckInDate.IsZero() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Check-in date is required")
		}
		tenant.CheckInDate = *req.CheckInDate
	}
	if req.Status != nil {
		switch *req.Status {
		case property.TenantStatusActive:
			tenant.Activate()
		case property.TenantStatusInactive:
			tenant.Deactivate()
		default:
			return nil, shared.NewDomainError("INVALID_INPUT", "Status must be ACTIVE or INACTIVE")
		}
	}
	tenant.Touch()

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// Delete soft-deletes a tenant; historical payments and bills keep their rows
// but the tenant disappears from every reconciliation run.
func (s *TenantService) Delete(ctx context.Context, locationID, id uuid.UUID) error {
	tenant, err := s.Get(ctx, locationID, id)
	if err != nil {
		return err
	}
	return s.tenantRepo.Delete(ctx, tenant.ID)
}
