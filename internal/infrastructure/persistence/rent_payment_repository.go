package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/billing"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRentPaymentRepository implements billing.RentPaymentRepository using GORM
type GormRentPaymentRepository struct {
	db *gorm.DB
}

// NewGormRentPaymentRepository creates a new GormRentPaymentRepository
func NewGormRentPaymentRepository(db *gorm.DB) *GormRentPaymentRepository {
	return &GormRentPaymentRepository{db: db}
}

// FindByID finds a rent payment record by its ID
func (r *GormRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant returns the tenant's records ordered by payment date
// descending, the order the matcher expects. The ID tiebreak keeps the order
// stable when two records share a payment date.
func (r *GormRentPaymentRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date DESC, id DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]billing.RentPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// FindDueOn returns unsettled records of a location whose due date (period
// end) falls on the given calendar day.
func (r *GormRentPaymentRepository) FindDueOn(ctx context.Context, locationID uuid.UUID, day time.Time) ([]billing.RentPayment, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("location_id = ? AND status <> ? AND period_end >= ? AND period_end < ?",
			locationID, billing.PaymentStatusPaid, dayStart, dayEnd).
		Order("period_end ASC, id ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]billing.RentPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// FindOverdue returns unsettled records of a location whose due date has
// passed as of now.
func (r *GormRentPaymentRepository) FindOverdue(ctx context.Context, locationID uuid.UUID, now time.Time) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("location_id = ? AND status <> ? AND period_end < ?",
			locationID, billing.PaymentStatusPaid, now).
		Order("period_end ASC, id ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]billing.RentPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// Save creates or updates a rent payment record
func (r *GormRentPaymentRepository) Save(ctx context.Context, payment *billing.RentPayment) error {
	var model models.RentPaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a rent payment record
func (r *GormRentPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RentPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
