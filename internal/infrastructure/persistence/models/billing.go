package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/billing"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
)

// RentPaymentModel is the persistence model for a monthly rent payment record.
// PeriodStart carries the month-of-intent; the same tenant may hold several
// rows for one month (corrections and retries), the matcher collapses them.
type RentPaymentModel struct {
	BaseModel
	TenantID         uuid.UUID             `gorm:"type:uuid;not null;index:idx_payment_tenant_period,priority:1"`
	LocationID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	AmountPaid       valueobject.Money     `gorm:"type:decimal(12,2);not null"`
	ActualRentAmount valueobject.Money     `gorm:"type:decimal(12,2);not null"`
	PaymentDate      time.Time             `gorm:"not null;index"`
	Status           billing.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	PeriodStart      time.Time             `gorm:"not null;index:idx_payment_tenant_period,priority:2"`
	PeriodEnd        time.Time             `gorm:"not null;index"`
	Method           string                `gorm:"type:varchar(30)"`
	Reference        string                `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (RentPaymentModel) TableName() string {
	return "rent_payments"
}

// ToDomain converts the persistence model to a domain RentPayment
func (m *RentPaymentModel) ToDomain() *billing.RentPayment {
	return &billing.RentPayment{
		BaseEntity:       m.BaseModel.ToDomain(),
		TenantID:         m.TenantID,
		LocationID:       m.LocationID,
		AmountPaid:       m.AmountPaid,
		ActualRentAmount: m.ActualRentAmount,
		PaymentDate:      m.PaymentDate,
		Status:           m.Status,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		Method:           m.Method,
		Reference:        m.Reference,
	}
}

// FromDomain populates the persistence model from a domain RentPayment
func (m *RentPaymentModel) FromDomain(p *billing.RentPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.LocationID = p.LocationID
	m.AmountPaid = p.AmountPaid
	m.ActualRentAmount = p.ActualRentAmount
	m.PaymentDate = p.PaymentDate
	m.Status = p.Status
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.Method = p.Method
	m.Reference = p.Reference
}

// CurrentBillModel is the persistence model for a non-rent charge
type CurrentBillModel struct {
	BaseModel
	TenantID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_bill_tenant_date,priority:1"`
	LocationID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	BillAmount  valueobject.Money `gorm:"type:decimal(12,2);not null"`
	BillDate    time.Time         `gorm:"not null;index:idx_bill_tenant_date,priority:2"`
	Description string            `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CurrentBillModel) TableName() string {
	return "current_bills"
}

// ToDomain converts the persistence model to a domain CurrentBill
func (m *CurrentBillModel) ToDomain() *billing.CurrentBill {
	return &billing.CurrentBill{
		BaseEntity:  m.BaseModel.ToDomain(),
		TenantID:    m.TenantID,
		LocationID:  m.LocationID,
		BillAmount:  m.BillAmount,
		BillDate:    m.BillDate,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain CurrentBill
func (m *CurrentBillModel) FromDomain(b *billing.CurrentBill) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.TenantID = b.TenantID
	m.LocationID = b.LocationID
	m.BillAmount = b.BillAmount
	m.BillDate = b.BillDate
	m.Description = b.Description
}
