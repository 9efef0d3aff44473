package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements property.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForLocation finds a tenant by ID within a location
func (r *GormTenantRepository) FindByIDForLocation(ctx context.Context, locationID, id uuid.UUID) (*property.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("location_id = ? AND id = ?", locationID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForLocation finds all tenants of a location matching the filter
func (r *GormTenantRepository) FindAllForLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]property.Tenant, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.TenantModel{}).
		Where("location_id = ?", locationID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, TenantSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query := base.Order(orderBy + " " + orderDir)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var tenantModels []models.TenantModel
	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, 0, err
	}

	tenants := make([]property.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, total, nil
}

// FindActiveForLocation returns ACTIVE tenants of a location ordered by name
// then ID. The stable order keeps repeated reconciliation runs identical.
func (r *GormTenantRepository) FindActiveForLocation(ctx context.Context, locationID uuid.UUID) ([]property.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("location_id = ? AND status = ?", locationID, property.TenantStatusActive).
		Order("name ASC, id ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]property.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

// FindActiveByRoom returns the ACTIVE occupants of one room
func (r *GormTenantRepository) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]property.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, property.TenantStatusActive).
		Order("name ASC, id ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]property.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *property.Tenant) error {
	var model models.TenantModel
	model.FromDomain(tenant)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a tenant
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TenantModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
