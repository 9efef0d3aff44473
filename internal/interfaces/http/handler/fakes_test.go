package handler

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pgnest/backend/internal/domain/billing"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
)

// In-memory repository fakes backing handler tests. They keep the contracts
// the services rely on: location scoping, active-only reads and the
// all-or-nothing duplicate-month semantics of CreateAll.

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
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
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
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (f *fakeTenantRepo) FindActiveForLocation(_ context.Context, locationID uuid.UUID) ([]property.Tenant, error) {
	var out []property.Tenant
	for _, t := range f.tenants {
		if t.LocationID == locationID && t.IsActive() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeTenantRepo) FindActiveByRoom(_ context.Context, roomID uuid.UUID) ([]property.Tenant, error) {
	var out []property.Tenant
	for _, t := range f.tenants {
		if t.RoomID == roomID && t.IsActive() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
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

type fakeBillRepo struct {
	bills map[uuid.UUID]billing.CurrentBill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[uuid.UUID]billing.CurrentBill)}
}

func (f *fakeBillRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.CurrentBill, error) {
	if b, ok := f.bills[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeBillRepo) FindAllForLocation(_ context.Context, locationID uuid.UUID, _ shared.Filter) ([]billing.CurrentBill, int64, error) {
	var out []billing.CurrentBill
	for _, b := range f.bills {
		if b.LocationID == locationID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBillRepo) FindByMonth(_ context.Context, locationID uuid.UUID, month time.Month, year int) ([]billing.CurrentBill, error) {
	var out []billing.CurrentBill
	for _, b := range f.bills {
		if b.LocationID == locationID && b.BillDate.Month() == month && b.BillDate.Year() == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBillRepo) AnyExistsForMonth(_ context.Context, tenantIDs []uuid.UUID, billDate time.Time) (bool, error) {
	return f.anyExists(tenantIDs, billDate), nil
}

func (f *fakeBillRepo) anyExists(tenantIDs []uuid.UUID, billDate time.Time) bool {
	for _, b := range f.bills {
		for _, id := range tenantIDs {
			if b.TenantID == id && b.CoversMonth(billDate) {
				return true
			}
		}
	}
	return false
}

func (f *fakeBillRepo) CreateAll(_ context.Context, bills []*billing.CurrentBill) error {
	for _, b := range bills {
		if f.anyExists([]uuid.UUID{b.TenantID}, b.BillDate) {
			return shared.ErrDuplicateBill
		}
	}
	for _, b := range bills {
		f.bills[b.ID] = *b
	}
	return nil
}

func (f *fakeBillRepo) Update(_ context.Context, b *billing.CurrentBill) error {
	f.bills[b.ID] = *b
	return nil
}

func (f *fakeBillRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.bills, id)
	return nil
}
