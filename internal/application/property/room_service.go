package property

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
)

// CreateRoomRequest carries the fields of a new room
type CreateRoomRequest struct {
	LocationID uuid.UUID
	RoomNumber string
	RentPrice  valueobject.Money
	Capacity   int
}

// UpdateRoomRequest carries the mutable fields of a room. Nil means leave
// unchanged.
type UpdateRoomRequest struct {
	RoomNumber *string
	RentPrice  *valueobject.Money
	Capacity   *int
}

// RoomService manages the rooms of a location. Room rent is the input the
// reconciliation engine bills active occupants against.
type RoomService struct {
	roomRepo property.RoomRepository
	logger   *zap.Logger
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo property.RoomRepository, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Create adds a room to a location
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*property.Room, error) {
	room, err := property.NewRoom(req.LocationID, req.RoomNumber, req.RentPrice, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("location_id", room.LocationID.String()),
		zap.String("room_number", room.RoomNumber),
	)
	return room, nil
}

// Get returns one room of a location
func (s *RoomService) Get(ctx context.Context, locationID, id uuid.UUID) (*property.Room, error) {
	room, err := s.roomRepo.FindByIDForLocation(ctx, locationID, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}
	return room, nil
}

// List returns a page of a location's rooms
func (s *RoomService) List(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]property.Room, int64, error) {
	return s.roomRepo.FindAllForLocation(ctx, locationID, filter)
}

// Update patches a room's number, rent or capacity
func (s *RoomService) Update(ctx context.Context, locationID, id uuid.UUID, req UpdateRoomRequest) (*property.Room, error) {
	room, err := s.Get(ctx, locationID, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		if *req.RoomNumber == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Room number is required")
		}
		room.RoomNumber = *req.RoomNumber
	}
	if req.RentPrice != nil {
		if err := room.UpdateRent(*req.RentPrice); err != nil {
			return nil, err
		}
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Capacity must be positive")
		}
		room.Capacity = *req.Capacity
	}
	room.Touch()

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete soft-deletes a room
func (s *RoomService) Delete(ctx context.Context, locationID, id uuid.UUID) error {
	room, err := s.Get(ctx, locationID, id)
	if err != nil {
		return err
	}
	return s.roomRepo.Delete(ctx, room.ID)
}
