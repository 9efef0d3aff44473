package property

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
)

// CreateLocationRequest carries the fields of a new PG location
type CreateLocationRequest struct {
	Name    string
	Address string
	City    string
	Phone   string
}

// UpdateLocationRequest carries the mutable fields of a location. Nil means
// leave unchanged.
type UpdateLocationRequest struct {
	Name    *string
	Address *string
	City    *string
	Phone   *string
}

// LocationService manages PG locations
type LocationService struct {
	locationRepo property.LocationRepository
	logger       *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo property.LocationRepository, logger *zap.Logger) *LocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationService{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// Create registers a new PG location
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*property.Location, error) {
	location, err := property.NewLocation(req.Name, req.Address, req.City, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	s.logger.Info("Location created",
		zap.String("location_id", location.ID.String()),
		zap.String("name", location.Name),
	)
	return location, nil
}

// Get returns one location by ID
func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (*property.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, shared.ErrNotFound
	}
	return location, nil
}

// List returns every location ordered by name
func (s *LocationService) List(ctx context.Context) ([]property.Location, error) {
	return s.locationRepo.FindAll(ctx)
}

// Update patches a location's details
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*property.Location, error) {
	location, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Location name is required")
		}
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.City != nil {
		location.City = *req.City
	}
	if req.Phone != nil {
		location.Phone = *req.Phone
	}
	location.Touch()

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete soft-deletes a location
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}
