package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
)

// TenantStatus is the lifecycle status of a tenant
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "ACTIVE"
	TenantStatusInactive TenantStatus = "INACTIVE"
)

// IsValid checks if the status is a known value
func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusActive, TenantStatusInactive:
		return true
	}
	return false
}

// Tenant is a paying guest occupying a bed in a room. CheckInDate anchors the
// billing schedule: the tenant owes rent for every month from the check-in
// month through the current month.
type Tenant struct {
	shared.BaseEntity
	LocationID  uuid.UUID
	RoomID      uuid.UUID
	BedNumber   string
	Name        string
	Phone       string
	Email       string
	CheckInDate time.Time
	Status      TenantStatus
}

// NewTenant creates a new active tenant checked into a room
func NewTenant(locationID, roomID uuid.UUID, name, phone string, checkInDate time.Time) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location ID is required")
	}
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Room ID is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant name is required")
	}
	if checkInDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Check-in date is required")
	}
	return &Tenant{
		BaseEntity:  shared.NewBaseEntity(),
		LocationID:  locationID,
		RoomID:      roomID,
		Name:        name,
		Phone:       phone,
		CheckInDate: checkInDate,
		Status:      TenantStatusActive,
	}, nil
}

// IsActive reports whether the tenant currently occupies a bed
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Deactivate marks the tenant as checked out. Billing stops accruing from the
// next scheduled run; historical records are untouched.
func (t *Tenant) Deactivate() {
	t.Status = TenantStatusInactive
	t.Touch()
}

// Activate marks the tenant as active again
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
	t.Touch()
}

// MoveToRoom reassigns the tenant to another room
func (t *Tenant) MoveToRoom(roomID uuid.UUID, bedNumber string) error {
	if roomID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Room ID is required")
	}
	t.RoomID = roomID
	t.BedNumber = bedNumber
	t.Touch()
	return nil
}
