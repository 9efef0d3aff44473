package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/pgnest/backend/internal/application/property"
	"github.com/pgnest/backend/internal/interfaces/http/dto"
)

// RoomHandler handles room endpoints, scoped by X-PG-ID
type RoomHandler struct {
	BaseHandler
	roomService *propertyapp.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *propertyapp.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	RoomNumber string  `json:"room_number" binding:"required,min=1,max=50"`
	RentPrice  float64 `json:"rent_price" binding:"gte=0"`
	Capacity   int     `json:"capacity" binding:"omitempty,gte=1"`
}

// UpdateRoomRequest represents a request to update a room
type UpdateRoomRequest struct {
	RoomNumber *string  `json:"room_number" binding:"omitempty,min=1,max=50"`
	RentPrice  *float64 `json:"rent_price" binding:"omitempty,gte=0"`
	Capacity   *int     `json:"capacity" binding:"omitempty,gte=1"`
}

// Create adds a room to the active location
func (h *RoomHandler) Create(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), propertyapp.CreateRoomRequest{
		LocationID: locationID,
		RoomNumber: req.RoomNumber,
		RentPrice:  toMoney(req.RentPrice),
		Capacity:   req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRoomResponse(room))
}

// GetByID returns one room of the active location
func (h *RoomHandler) GetByID(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	room, err := h.roomService.Get(c.Request.Context(), locationID, roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomResponse(room))
}

// List returns a page of the active location's rooms
func (h *RoomHandler) List(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := filterFromListRequest(req)

	rooms, total, err := h.roomService.List(c.Request.Context(), locationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toRoomResponses(rooms), total, filter.Page, filter.PageSize)
}

// Update patches a room
func (h *RoomHandler) Update(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := propertyapp.UpdateRoomRequest{
		RoomNumber: req.RoomNumber,
		Capacity:   req.Capacity,
	}
	if req.RentPrice != nil {
		rent := toMoney(*req.RentPrice)
		appReq.RentPrice = &rent
	}

	room, err := h.roomService.Update(c.Request.Context(), locationID, roomID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomResponse(room))
}

// Delete soft-deletes a room
func (h *RoomHandler) Delete(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), locationID, roomID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
