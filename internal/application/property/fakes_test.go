package property

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
)

// In-memory repository fakes for service tests.

type fakeLocationRepo struct {
	locations map[uuid.UUID]property.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[uuid.UUID]property.Location)}
}

func (f *fakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Location, error) {
	if loc, ok := f.locations[id]; ok {
		return &loc, nil
	}
	return nil, nil
}

func (f *fakeLocationRepo) FindAll(_ context.Context) ([]property.Location, error) {
	out := make([]property.Location, 0, len(f.locations))
	for _, loc := range f.locations {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (f *fakeLocationRepo) Save(_ context.Context, loc *property.Location) error {
	f.locations[loc.ID] = *loc
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.locations, id)
	return nil
}

type fakeRoomRepo struct {
	rooms map[uuid.UUID]property.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]property.Room)}
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Room, error) {
	if r, ok := f.rooms[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRoomRepo) FindByIDForLocation(_ context.Context, locationID, id uuid.UUID) (*property.Room, error) {
	if r, ok := f.rooms[id]; ok && r.LocationID == locationID {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRoomRepo) FindAllForLocation(_ context.Context, locationID uuid.UUID, _ shared.Filter) ([]property.Room, int64, error) {
	var out []property.Room
	for _, r := range f.rooms {
		if r.LocationID == locationID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRoomRepo) Save(_ context.Context, r *property.Room) error {
	f.rooms[r.ID] = *r
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rooms, id)
	return nil
}

type fakeTenantRepo struct {
	tenants map[uuid.UUID]property.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]property.Tenant)}
}

func (f *fakeTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Tenant, error) {
	if t, ok := f.tenants[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (f *fakeTenantRepo) FindByIDForLocation(_ context.Context, locationID, id uuid.UUID) (*property.Tenant, error) {
	if t, ok := f.tenants[id]; ok && t.LocationID == locationID {
		return &t, nil
	}
	return nil, nil
}

func (f *fakeTenantRepo) FindAllForLocation(_ context.Context, locationID uuid.UUID, _ shared.Filter) ([]property.Tenant, int64, error) {
	var out []property.Tenant
	for _, t := range f.tenants {
		if t.LocationID == locationID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTenantRepo) FindActiveForLocation(_ context.Context, locationID uuid.UUID) ([]property.Tenant, error) {
	var out []property.Tenant
	for _, t := range f.tenants {
		if t.LocationID == locationID && t.IsActive() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTenantRepo) FindActiveByRoom(_ context.Context, roomID uuid.UUID) ([]property.Tenant, error) {
	var out []property.Tenant
	for _, t := range f.tenants {
		if t.RoomID == roomID && t.IsActive() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTenantRepo) Save(_ context.Context, t *property.Tenant) error {
	f.tenants[t.ID] = *t
	return nil
}

func (f *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tenants, id)
	return nil
}
