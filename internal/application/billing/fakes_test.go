package billing

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/billing"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// In-memory repository fakes. They mirror the repository contracts closely
// enough for service tests: ordered reads, soft-delete exclusion, and the
// transactional duplicate-month semantics of CreateAll.

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
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (f *fakeTenantRepo) FindActiveByRoom(_ context.Context, roomID uuid.UUID) ([]property.Tenant, error) {
	var out []property.Tenant
	for _, t := range f.tenants {
		if t.RoomID == roomID && t.IsActive() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
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

type fakePaymentRepo struct {
	payments map[uuid.UUID]billing.RentPayment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]billing.RentPayment)}
}

func (f *fakePaymentRepo) FindByTenant(_ context.Context, tenantID uuid.UUID) ([]billing.RentPayment, error) {
	var out []billing.RentPayment
	for _, p := range f.payments {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	// Descending payment date, matching the store read the matcher expects.
	sort.Slice(out, func(i, j int) bool {
		return out[i].PaymentDate.After(out[j].PaymentDate)
	})
	return out, nil
}

func (f *fakePaymentRepo) FindDueOn(_ context.Context, locationID uuid.UUID, day time.Time) ([]billing.RentPayment, error) {
	y, m, d := day.Date()
	var out []billing.RentPayment
	for _, p := range f.payments {
		if p.LocationID != locationID || p.Status.IsSettled() {
			continue
		}
		py, pm, pd := p.PeriodEnd.Date()
		if py == y && pm == m && pd == d {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) FindOverdue(_ context.Context, locationID uuid.UUID, now time.Time) ([]billing.RentPayment, error) {
	var out []billing.RentPayment
	for _, p := range f.payments {
		if p.LocationID == locationID && !p.Status.IsSettled() && p.PeriodEnd.Before(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Save(_ context.Context, p *billing.RentPayment) error {
	f.payments[p.ID] = *p
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.payments, id)
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

type fakeCache struct {
	reports     map[uuid.UUID]*PendingPaymentsReport
	hits        int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{reports: make(map[uuid.UUID]*PendingPaymentsReport)}
}

func (f *fakeCache) Get(_ context.Context, locationID uuid.UUID) (*PendingPaymentsReport, bool) {
	r, ok := f.reports[locationID]
	if ok {
		f.hits++
	}
	return r, ok
}

func (f *fakeCache) Set(_ context.Context, locationID uuid.UUID, report *PendingPaymentsReport) {
	f.reports[locationID] = report
}

func (f *fakeCache) Invalidate(_ context.Context, locationID uuid.UUID) {
	delete(f.reports, locationID)
	f.invalidated++
}

type fakeNotifier struct {
	sent    []uuid.UUID
	failFor map[uuid.UUID]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[uuid.UUID]error)}
}

func (f *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, _ Notification) error {
	if err, ok := f.failFor[userID]; ok {
		return err
	}
	f.sent = append(f.sent, userID)
	return nil
}
