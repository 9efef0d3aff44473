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

// GormCurrentBillRepository implements billing.CurrentBillRepository using GORM
type GormCurrentBillRepository struct {
	db *gorm.DB
}

// NewGormCurrentBillRepository creates a new GormCurrentBillRepository
func NewGormCurrentBillRepository(db *gorm.DB) *GormCurrentBillRepository {
	return &GormCurrentBillRepository{db: db}
}

// FindByID finds a current bill by its ID
func (r *GormCurrentBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CurrentBill, error) {
	var model models.CurrentBillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForLocation finds all current bills of a location matching the filter
func (r *GormCurrentBillRepository) FindAllForLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]billing.CurrentBill, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.CurrentBillModel{}).
		Where("location_id = ?", locationID)

	if filter.Search != "" {
		base = base.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, CurrentBillSortFields, "bill_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query := base.Order(orderBy + " " + orderDir)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var billModels []models.CurrentBillModel
	if err := query.Find(&billModels).Error; err != nil {
		return nil, 0, err
	}

	bills := make([]billing.CurrentBill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, total, nil
}

// FindByMonth returns all bills of a location dated within the given calendar month
func (r *GormCurrentBillRepository) FindByMonth(ctx context.Context, locationID uuid.UUID, month time.Month, year int) ([]billing.CurrentBill, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var billModels []models.CurrentBillModel
	if err := r.db.WithContext(ctx).
		Where("location_id = ? AND bill_date >= ? AND bill_date < ?", locationID, monthStart, monthEnd).
		Order("bill_date ASC, id ASC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]billing.CurrentBill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// AnyExistsForMonth reports whether any of the tenants already carries a bill
// in the calendar month of billDate. Soft-deleted bills do not count.
func (r *GormCurrentBillRepository) AnyExistsForMonth(ctx context.Context, tenantIDs []uuid.UUID, billDate time.Time) (bool, error) {
	return anyExistsForMonth(r.db.WithContext(ctx), tenantIDs, billDate)
}

func anyExistsForMonth(tx *gorm.DB, tenantIDs []uuid.UUID, billDate time.Time) (bool, error) {
	if len(tenantIDs) == 0 {
		return false, nil
	}

	monthStart := time.Date(billDate.Year(), billDate.Month(), 1, 0, 0, 0, 0, billDate.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var count int64
	if err := tx.Model(&models.CurrentBillModel{}).
		Where("tenant_id IN ? AND bill_date >= ? AND bill_date < ?", tenantIDs, monthStart, monthEnd).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAll atomically inserts every bill or none. The duplicate-month check
// runs inside the same transaction as the inserts so two concurrent split
// requests cannot both pass it.
func (r *GormCurrentBillRepository) CreateAll(ctx context.Context, bills []*billing.CurrentBill) error {
	if len(bills) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenantIDs := make([]uuid.UUID, len(bills))
		for i, bill := range bills {
			tenantIDs[i] = bill.TenantID
		}

		exists, err := anyExistsForMonth(tx, tenantIDs, bills[0].BillDate)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrDuplicateBill
		}

		billModels := make([]models.CurrentBillModel, len(bills))
		for i, bill := range bills {
			billModels[i].FromDomain(bill)
		}
		return tx.Create(&billModels).Error
	})
}

// Update updates an existing current bill
func (r *GormCurrentBillRepository) Update(ctx context.Context, bill *billing.CurrentBill) error {
	var model models.CurrentBillModel
	model.FromDomain(bill)
	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a current bill
func (r *GormCurrentBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CurrentBillModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
