package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
)

// LocationModel is the persistence model for a PG location
type LocationModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500)"`
	City    string `gorm:"type:varchar(100);index"`
	Phone   string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the persistence model to a domain Location
func (m *LocationModel) ToDomain() *property.Location {
	return &property.Location{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		City:       m.City,
		Phone:      m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Location
func (m *LocationModel) FromDomain(l *property.Location) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.Name = l.Name
	m.Address = l.Address
	m.City = l.City
	m.Phone = l.Phone
}

// RoomModel is the persistence model for a room
type RoomModel struct {
	BaseModel
	LocationID uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_room_location_number,priority:1"`
	RoomNumber string            `gorm:"type:varchar(20);not null;uniqueIndex:idx_room_location_number,priority:2"`
	RentPrice  valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Capacity   int               `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room
func (m *RoomModel) ToDomain() *property.Room {
	return &property.Room{
		BaseEntity: m.BaseModel.ToDomain(),
		LocationID: m.LocationID,
		RoomNumber: m.RoomNumber,
		RentPrice:  m.RentPrice,
		Capacity:   m.Capacity,
	}
}

// FromDomain populates the persistence model from a domain Room
func (m *RoomModel) FromDomain(r *property.Room) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.LocationID = r.LocationID
	m.RoomNumber = r.RoomNumber
	m.RentPrice = r.RentPrice
	m.Capacity = r.Capacity
}

// TenantModel is the persistence model for a tenant (paying guest)
type TenantModel struct {
	BaseModel
	LocationID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	RoomID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	BedNumber   string                `gorm:"type:varchar(10)"`
	Name        string                `gorm:"type:varchar(200);not null;index"`
	Phone       string                `gorm:"type:varchar(20)"`
	Email       string                `gorm:"type:varchar(200)"`
	CheckInDate time.Time             `gorm:"not null"`
	Status      property.TenantStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *property.Tenant {
	return &property.Tenant{
		BaseEntity:  m.BaseModel.ToDomain(),
		LocationID:  m.LocationID,
		RoomID:      m.RoomID,
		BedNumber:   m.BedNumber,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		CheckInDate: m.CheckInDate,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *property.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.LocationID = t.LocationID
	m.RoomID = t.RoomID
	m.BedNumber = t.BedNumber
	m.Name = t.Name
	m.Phone = t.Phone
	m.Email = t.Email
	m.CheckInDate = t.CheckInDate
	m.Status = t.Status
}
