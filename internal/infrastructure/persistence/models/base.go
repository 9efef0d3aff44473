package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity. DeletedAt enables GORM soft deletes:
// tombstoned rows never surface through normal reads, so deleted payment and
// bill records stay out of reconciliation and duplicate-month checks.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}
