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

// GormRoomRepository implements property.RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by its ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForLocation finds a room by ID within a location
func (r *GormRoomRepository) FindByIDForLocation(ctx context.Context, locationID, id uuid.UUID) (*property.Room, error) {
	var model models.RoomModel
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

// FindAllForLocation finds all rooms of a location matching the filter
func (r *GormRoomRepository) FindAllForLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]property.Room, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("location_id = ?", locationID)

	if filter.Search != "" {
		base = base.Where("room_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, RoomSortFields, "room_number")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query := base.Order(orderBy + " " + orderDir)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var roomModels []models.RoomModel
	if err := query.Find(&roomModels).Error; err != nil {
		return nil, 0, err
	}

	rooms := make([]property.Room, len(roomModels))
	for i, model := range roomModels {
		rooms[i] = *model.ToDomain()
	}
	return rooms, total, nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *property.Room) error {
	var model models.RoomModel
	model.FromDomain(room)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a room
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoomModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
