package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingapp "github.com/pgnest/backend/internal/application/billing"
	"github.com/pgnest/backend/internal/domain/property"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
	"github.com/pgnest/backend/internal/interfaces/http/middleware"
)

// billTestEnv wires the bill handler against in-memory repositories behind a
// real gin router with the location middleware in place.
type billTestEnv struct {
	router     *gin.Engine
	locationID uuid.UUID
	roomRepo   property.RoomRepository
	tenantRepo property.TenantRepository
}

func newBillTestEnv(t *testing.T) *billTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	locationID := uuid.New()
	roomRepo := newFakeRoomRepo()
	tenantRepo := newFakeTenantRepo()
	billRepo := newFakeBillRepo()

	svc := billingapp.NewBillService(roomRepo, tenantRepo, billRepo, nil, nil)
	h := NewCurrentBillHandler(svc)

	router := gin.New()
	cfg := middleware.DefaultLocationConfig()
	router.Use(middleware.LocationMiddlewareWithConfig(cfg))
	group := router.Group("/api/v1")
	{
		group.POST("/current-bills", h.Create)
		group.GET("/current-bills", h.List)
		group.GET("/current-bills/by-month/:month/:year", h.ListByMonth)
		group.GET("/current-bills/:id", h.GetByID)
		group.PATCH("/current-bills/:id", h.Update)
		group.DELETE("/current-bills/:id", h.Delete)
	}

	return &billTestEnv{
		router:     router,
		locationID: locationID,
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
	}
}

func (e *billTestEnv) seedRoomWithTenants(t *testing.T, occupants int) (*property.Room, []*property.Tenant) {
	t.Helper()
	ctx := context.Background()

	room, err := property.NewRoom(e.locationID, "101", valueobject.NewMoneyINRFromFloat(10000), occupants)
	require.NoError(t, err)
	require.NoError(t, e.roomRepo.Save(ctx, room))

	tenants := make([]*property.Tenant, 0, occupants)
	names := []string{"Anil", "Bina", "Chetan", "Divya"}
	for i := 0; i < occupants; i++ {
		tenant, err := property.NewTenant(e.locationID, room.ID, names[i%len(names)], "",
			time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, e.tenantRepo.Save(ctx, tenant))
		tenants = append(tenants, tenant)
	}
	return room, tenants
}

func (e *billTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.LocationHeaderKey, e.locationID.String())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCurrentBillHandler_CreateRoomSplit(t *testing.T) {
	env := newBillTestEnv(t)
	room, _ := env.seedRoomWithTenants(t, 3)

	roomID := room.ID.String()
	w := env.do(t, http.MethodPost, "/api/v1/current-bills", gin.H{
		"room_id":       roomID,
		"split_equally": true,
		"bill_amount":   3000,
		"bill_date":     "2025-06-01",
		"description":   "Electricity June",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp APIResponse[CreateBillResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data.TenantCount)
	assert.Equal(t, "1000.00", resp.Data.BillPerTenant)
	assert.Len(t, resp.Data.Bills, 3)

	t.Run("same month again conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/current-bills", gin.H{
			"room_id":       roomID,
			"split_equally": true,
			"bill_amount":   500,
			"bill_date":     "2025-06-20",
		})
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "ERR_DUPLICATE_BILL")
	})
}

func TestCurrentBillHandler_CreateRoomSplitNoOccupants(t *testing.T) {
	env := newBillTestEnv(t)
	room, _ := env.seedRoomWithTenants(t, 0)

	w := env.do(t, http.MethodPost, "/api/v1/current-bills", gin.H{
		"room_id":       room.ID.String(),
		"split_equally": true,
		"bill_amount":   3000,
		"bill_date":     "2025-06-01",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "ERR_NO_ACTIVE_OCCUPANTS")
}

func TestCurrentBillHandler_CreateIndividual(t *testing.T) {
	env := newBillTestEnv(t)
	_, tenants := env.seedRoomWithTenants(t, 1)

	w := env.do(t, http.MethodPost, "/api/v1/current-bills", gin.H{
		"tenant_id":   tenants[0].ID.String(),
		"bill_amount": 450.5,
		"bill_date":   "2025-06-01",
		"description": "Laundry",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp APIResponse[CreateBillResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.TenantCount)
	assert.Equal(t, "450.50", resp.Data.TotalBillAmount)
}

func TestCurrentBillHandler_CreateValidation(t *testing.T) {
	env := newBillTestEnv(t)
	room, tenants := env.seedRoomWithTenants(t, 1)

	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "both modes selected",
			body: gin.H{
				"room_id":       room.ID.String(),
				"tenant_id":     tenants[0].ID.String(),
				"split_equally": true,
				"bill_amount":   100,
				"bill_date":     "2025-06-01",
			},
		},
		{
			name: "neither mode selected",
			body: gin.H{"bill_amount": 100, "bill_date": "2025-06-01"},
		},
		{
			name: "bad date",
			body: gin.H{
				"tenant_id":   tenants[0].ID.String(),
				"bill_amount": 100,
				"bill_date":   "June 2025",
			},
		},
		{
			name: "missing amount",
			body: gin.H{"tenant_id": tenants[0].ID.String(), "bill_date": "2025-06-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/current-bills", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestCurrentBillHandler_MissingLocationHeader(t *testing.T) {
	env := newBillTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/current-bills", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_LOCATION")
}

func TestCurrentBillHandler_ByMonthAndLifecycle(t *testing.T) {
	env := newBillTestEnv(t)
	_, tenants := env.seedRoomWithTenants(t, 1)
	tenantID := tenants[0].ID.String()

	w := env.do(t, http.MethodPost, "/api/v1/current-bills", gin.H{
		"tenant_id":   tenantID,
		"bill_amount": 900,
		"bill_date":   "2025-06-10",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created APIResponse[CreateBillResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	billID := created.Data.Bills[0].ID

	t.Run("by month finds it", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/current-bills/by-month/6/2025", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), billID)

		w = env.do(t, http.MethodGet, "/api/v1/current-bills/by-month/7/2025", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), billID)
	})

	t.Run("month bounds rejected", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/current-bills/by-month/13/2025", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update amount", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/v1/current-bills/"+billID, gin.H{
			"bill_amount": 1200,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "1200.00")
	})

	t.Run("delete then 404", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/v1/current-bills/"+billID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/current-bills/"+billID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
