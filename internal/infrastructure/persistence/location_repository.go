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

// GormLocationRepository implements property.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Location, error) {
	var model models.LocationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every location ordered by name then ID
func (r *GormLocationRepository) FindAll(ctx context.Context) ([]property.Location, error) {
	var locationModels []models.LocationModel
	if err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&locationModels).Error; err != nil {
		return nil, err
	}

	locations := make([]property.Location, len(locationModels))
	for i, model := range locationModels {
		locations[i] = *model.ToDomain()
	}
	return locations, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *property.Location) error {
	var model models.LocationModel
	model.FromDomain(location)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a location
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LocationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
