package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides identity and timestamps common to all domain entities.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a base entity with a fresh ID and timestamps.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the updated timestamp. Call after any mutation.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
