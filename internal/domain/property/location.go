package property

import (
	"strings"

	"github.com/pgnest/backend/internal/domain/shared"
)

// Location is a PG property: one building/branch that owns rooms and tenants.
type Location struct {
	shared.BaseEntity
	Name    string
	Address string
	City    string
	Phone   string
}

// NewLocation creates a new PG location
func NewLocation(name, address, city, phone string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location name is required")
	}
	return &Location{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    address,
		City:       city,
		Phone:      phone,
	}, nil
}
