package handler

import (
	"time"

	"github.com/pgnest/backend/internal/domain/billing"
	"github.com/pgnest/backend/internal/domain/property"
)

// LocationResponse is the wire shape of a PG location
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toLocationResponse(l *property.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID.String(),
		Name:      l.Name,
		Address:   l.Address,
		City:      l.City,
		Phone:     l.Phone,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toLocationResponses(locations []property.Location) []LocationResponse {
	out := make([]LocationResponse, len(locations))
	for i := range locations {
		out[i] = toLocationResponse(&locations[i])
	}
	return out
}

// RoomResponse is the wire shape of a room
type RoomResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	RoomNumber string    `json:"room_number"`
	RentPrice  string    `json:"rent_price"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toRoomResponse(r *property.Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID.String(),
		LocationID: r.LocationID.String(),
		RoomNumber: r.RoomNumber,
		RentPrice:  r.RentPrice.StringFixed(2),
		Capacity:   r.Capacity,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toRoomResponses(rooms []property.Room) []RoomResponse {
	out := make([]RoomResponse, len(rooms))
	for i := range rooms {
		out[i] = toRoomResponse(&rooms[i])
	}
	return out
}

// TenantResponse is the wire shape of a tenant
type TenantResponse struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"location_id"`
	RoomID      string    `json:"room_id"`
	BedNumber   string    `json:"bed_number,omitempty"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	CheckInDate string    `json:"check_in_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTenantResponse(t *property.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID.String(),
		LocationID:  t.LocationID.String(),
		RoomID:      t.RoomID.String(),
		BedNumber:   t.BedNumber,
		Name:        t.Name,
		Phone:       t.Phone,
		Email:       t.Email,
		CheckInDate: t.CheckInDate.Format(dateLayout),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTenantResponses(tenants []property.Tenant) []TenantResponse {
	out := make([]TenantResponse, len(tenants))
	for i := range tenants {
		out[i] = toTenantResponse(&tenants[i])
	}
	return out
}

// BillResponse is the wire shape of a current bill
type BillResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	LocationID  string    `json:"location_id"`
	BillAmount  string    `json:"bill_amount"`
	BillDate    string    `json:"bill_date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toBillResponse(b *billing.CurrentBill) BillResponse {
	return BillResponse{
		ID:          b.ID.String(),
		TenantID:    b.TenantID.String(),
		LocationID:  b.LocationID.String(),
		BillAmount:  b.BillAmount.StringFixed(2),
		BillDate:    b.BillDate.Format(dateLayout),
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBillResponses(bills []billing.CurrentBill) []BillResponse {
	out := make([]BillResponse, len(bills))
	for i := range bills {
		out[i] = toBillResponse(&bills[i])
	}
	return out
}
