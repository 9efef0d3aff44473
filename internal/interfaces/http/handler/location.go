package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/pgnest/backend/internal/application/property"
)

// LocationHandler handles PG location endpoints. Locations are the one
// resource not scoped by X-PG-ID: they ARE the scope.
type LocationHandler struct {
	BaseHandler
	locationService *propertyapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *propertyapp.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CreateLocationRequest represents a request to register a PG location
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=500"`
	City    string `json:"city" binding:"max=100"`
	Phone   string `json:"phone" binding:"max=50"`
}

// UpdateLocationRequest represents a request to update a PG location
type UpdateLocationRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

// Create registers a new PG location
func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), propertyapp.CreateLocationRequest{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toLocationResponse(location))
}

// GetByID returns one location
func (h *LocationHandler) GetByID(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	location, err := h.locationService.Get(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toLocationResponse(location))
}

// List returns every location
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.locationService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toLocationResponses(locations))
}

// Update patches a location
func (h *LocationHandler) Update(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), locationID, propertyapp.UpdateLocationRequest{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toLocationResponse(location))
}

// Delete soft-deletes a location
func (h *LocationHandler) Delete(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), locationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
