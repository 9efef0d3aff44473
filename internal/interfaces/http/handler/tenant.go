package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/pgnest/backend/internal/application/property"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/interfaces/http/dto"
)

// TenantHandler handles tenant lifecycle endpoints, scoped by X-PG-ID
type TenantHandler struct {
	BaseHandler
	tenantService *propertyapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *propertyapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenantRequest represents a check-in request
type CreateTenantRequest struct {
	RoomID      string `json:"room_id" binding:"required,uuid"`
	BedNumber   string `json:"bed_number" binding:"max=20"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	CheckInDate string `json:"check_in_date" binding:"required"`
}

// UpdateTenantRequest represents a tenant update; status INACTIVE checks the
// tenant out
type UpdateTenantRequest struct {
	RoomID      *string `json:"room_id" binding:"omitempty,uuid"`
	BedNumber   *string `json:"bed_number" binding:"omitempty,max=20"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	CheckInDate *string `json:"check_in_date"`
	Status      *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// Create checks a tenant into a room
func (h *TenantHandler) Create(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		h.BadRequest(c, "Invalid check-in date, expected YYYY-MM-DD")
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), propertyapp.CreateTenantRequest{
		LocationID:  locationID,
		RoomID:      roomID,
		BedNumber:   req.BedNumber,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		CheckInDate: checkIn,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTenantResponse(tenant))
}

// GetByID returns one tenant of the active location
func (h *TenantHandler) GetByID(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.Get(c.Request.Context(), locationID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// List returns a page of the active location's tenants
func (h *TenantHandler) List(c *gin.Context) {
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

	tenants, total, err := h.tenantService.List(c.Request.Context(), locationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toTenantResponses(tenants), total, filter.Page, filter.PageSize)
}

// Update patches a tenant's details, room assignment or status
func (h *TenantHandler) Update(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := propertyapp.UpdateTenantRequest{
		BedNumber: req.BedNumber,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			h.BadRequest(c, "Invalid room ID format")
			return
		}
		appReq.RoomID = &roomID
	}
	if req.CheckInDate != nil {
		checkIn, err := parseDate(*req.CheckInDate)
		if err != nil {
			h.BadRequest(c, "Invalid check-in date, expected YYYY-MM-DD")
			return
		}
		appReq.CheckInDate = &checkIn
	}
	if req.Status != nil {
		status := property.TenantStatus(*req.Status)
		appReq.Status = &status
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), locationID, tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// Delete soft-deletes a tenant
func (h *TenantHandler) Delete(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), locationID, tenantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
