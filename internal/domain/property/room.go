package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
)

// Room is a rentable unit within a location. RentPrice is the current monthly
// rent; the engine always bills against the current value, historical rent
// changes are not modelled per month.
type Room struct {
	shared.BaseEntity
	LocationID uuid.UUID
	RoomNumber string
	RentPrice  valueobject.Money
	Capacity   int
}

// NewRoom creates a new room in a location
func NewRoom(locationID uuid.UUID, roomNumber string, rentPrice valueobject.Money, capacity int) (*Room, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location ID is required")
	}
	if roomNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Room number is required")
	}
	if rentPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Rent price cannot be negative")
	}
	if capacity <= 0 {
		capacity = 1
	}
	return &Room{
		BaseEntity: shared.NewBaseEntity(),
		LocationID: locationID,
		RoomNumber: roomNumber,
		RentPrice:  rentPrice,
		Capacity:   capacity,
	}, nil
}

// HasRentConfigured reports whether a monthly obligation can be computed for
// occupants of this room. Rooms without a positive rent are skipped by
// reconciliation.
func (r *Room) HasRentConfigured() bool {
	return r.RentPrice.IsPositive()
}

// UpdateRent replaces the current monthly rent
func (r *Room) UpdateRent(rent valueobject.Money) error {
	if rent.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Rent price cannot be negative")
	}
	r.RentPrice = rent
	r.Touch()
	return nil
}
