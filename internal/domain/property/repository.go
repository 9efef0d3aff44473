package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
)

// LocationRepository persists PG locations
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	// FindAll returns every location ordered by name then ID; the scheduled
	// reminder jobs iterate it property by property.
	FindAll(ctx context.Context) ([]Location, error)
	Save(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomRepository persists rooms. All reads exclude soft-deleted rows.
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByIDForLocation(ctx context.Context, locationID, id uuid.UUID) (*Room, error)
	FindAllForLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]Room, int64, error)
	Save(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TenantRepository persists tenants. All reads exclude soft-deleted rows.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByIDForLocation(ctx context.Context, locationID, id uuid.UUID) (*Tenant, error)
	FindAllForLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]Tenant, int64, error)
	// FindActiveForLocation returns ACTIVE tenants of a location ordered by
	// name then ID, so repeated aggregation runs see an identical sequence.
	FindActiveForLocation(ctx context.Context, locationID uuid.UUID) ([]Tenant, error)
	// FindActiveByRoom returns the ACTIVE occupants of one room.
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}
