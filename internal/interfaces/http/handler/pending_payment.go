package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/pgnest/backend/internal/application/billing"
)

// PendingPaymentHandler exposes the rent reconciliation views, scoped by
// X-PG-ID. All computations are as of request time.
type PendingPaymentHandler struct {
	BaseHandler
	pendingService *billingapp.PendingPaymentService
}

// NewPendingPaymentHandler creates a new PendingPaymentHandler
func NewPendingPaymentHandler(pendingService *billingapp.PendingPaymentService) *PendingPaymentHandler {
	return &PendingPaymentHandler{pendingService: pendingService}
}

// Report returns the property-level pending payments report: every active
// tenant's expected-vs-actual rent position plus roll-up counts and totals
func (h *PendingPaymentHandler) Report(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	report, err := h.pendingService.Report(c.Request.Context(), locationID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// TenantView returns a single tenant's reconciliation
func (h *PendingPaymentHandler) TenantView(c *gin.Context) {
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

	view, err := h.pendingService.TenantView(c.Request.Context(), locationID, tenantID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// DueTomorrow lists payments whose period ends tomorrow
func (h *PendingPaymentHandler) DueTomorrow(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	due, err := h.pendingService.DueTomorrow(c.Request.Context(), locationID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, due)
}

// Overdue lists unsettled payments past their period end
func (h *PendingPaymentHandler) Overdue(c *gin.Context) {
	locationID, err := getLocationID(c)
	if err != nil {
		h.BadRequest(c, "Location not resolved")
		return
	}

	overdue, err := h.pendingService.Overdue(c.Request.Context(), locationID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overdue)
}
