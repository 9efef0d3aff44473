package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/pgnest/backend/internal/application/billing"
	"github.com/pgnest/backend/internal/interfaces/http/dto"
)

// CurrentBillHandler handles ad-hoc bill endpoints (electricity, maintenance
// and other charges on top of rent), scoped by X-PG-ID
type CurrentBillHandler struct {
	BaseHandler
	billService *billingapp.BillService
}

// NewCurrentBillHandler creates a new CurrentBillHandler
func NewCurrentBillHandler(billService *billingapp.BillService) *CurrentBillHandler {
	return &CurrentBillHandler{billService: billService}
}

// CreateBillRequest selects exactly one creation mode: room split (room_id
// with split_equally=true) or individual (tenant_id alone)
type CreateBillRequest struct {
	RoomID       *string `json:"room_id" binding:"omitempty,uuid"`
	TenantID     *string `json:"tenant_id" binding:"omitempty,uuid"`
	SplitEqually bool    `json:"split_equally"`
	BillAmount   float64 `json:"bill_amount" binding:"required,gt=0"`
	BillDate     string  `json:"bill_date" binding:"required"`
	Description  string  `json:"description" binding:"max=500"`
}

// UpdateBillRequest patches a bill's mutable fields
type UpdateBillRequest struct {
	BillAmount  *float64 `json:"bill_amount" binding:"omitempty,gt=0"`
	BillDate    *string  `json:"bill_date"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
}

// CreateBillResponse reports the created bills plus split arithmetic
type CreateBillResponse struct {
	Bills           []BillResponse `json:"bills"`
	TotalBillAmount string         `json:"total_bill_amount"`
	BillPerTenant   string         `json:"bill_per_tenant"`
	TenantCount     int            `json:"tenant_count"`
}

// Create creates one or more bills. In room-split mode the amount is divided
// across the room's active occupants and either every occupant gets a bill or
// none do.
func (h *CurrentBillHandler) Create(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	billDate, err := parseDate(req.BillDate)
	if err != nil {
		h.BadRequest(c, "Invalid bill date, expected YYYY-MM-DD")
		return
	}

	appReq := billingapp.CreateBillRequest{
		LocationID:   locationID,
		SplitEqually: req.SplitEqually,
		BillAmount:   toMoney(req.BillAmount),
		BillDate:     billDate,
		Description:  req.Description,
	}
	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			h.BadRequest(c, "Invalid room ID format")
			return
		}
		appReq.RoomID = &roomID
	}
	if req.TenantID != nil {
		tenantID, err := uuid.Parse(*req.TenantID)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID format")
			return
		}
		appReq.TenantID = &tenantID
	}

	result, err := h.billService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CreateBillResponse{
		Bills:           toBillResponses(result.Bills),
		TotalBillAmount: result.TotalBillAmount.StringFixed(2),
		BillPerTenant:   result.BillPerTenant.StringFixed(2),
		TenantCount:     result.TenantCount,
	})
}

// GetByID returns one bill
func (h *CurrentBillHandler) GetByID(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBillResponse(bill))
}

// List returns a page of the active location's bills
func (h *CurrentBillHandler) List(c *gin.Context) {
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

	bills, total, err := h.billService.List(c.Request.Context(), locationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toBillResponses(bills), total, filter.Page, filter.PageSize)
}

// ListByMonth returns the location's bills covering one calendar month
func (h *CurrentBillHandler) ListByMonth(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		h.BadRequest(c, "Month must be between 1 and 12")
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		h.BadRequest(c, "Invalid year")
		return
	}

	bills, err := h.billService.ListByMonth(c.Request.Context(), locationID, time.Month(month), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBillResponses(bills))
}

// Update patches a bill. Moving it to a month where the tenant already has a
// bill is rejected with a conflict.
func (h *CurrentBillHandler) Update(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := billingapp.UpdateBillRequest{
		Description: req.Description,
	}
	if req.BillAmount != nil {
		amount := toMoney(*req.BillAmount)
		appReq.BillAmount = &amount
	}
	if req.BillDate != nil {
		billDate, err := parseDate(*req.BillDate)
		if err != nil {
			h.BadRequest(c, "Invalid bill date, expected YYYY-MM-DD")
			return
		}
		appReq.BillDate = &billDate
	}

	bill, err := h.billService.Update(c.Request.Context(), billID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBillResponse(bill))
}

// Delete soft-deletes a bill
func (h *CurrentBillHandler) Delete(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), billID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
