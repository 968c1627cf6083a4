package trips

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/logger"
	"github.com/richxcame/transport-backend/pkg/middleware"
	"github.com/richxcame/transport-backend/pkg/pagination"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for trips
type Handler struct {
	svc *Service
}

// NewHandler creates a new trips handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts trip routes on the given group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	trips := api.Group("/trips")
	{
		trips.GET("", h.List)
		trips.POST("", h.Create)
		trips.POST("/bulk-invoice", h.BulkInvoice)
		trips.GET("/:id", h.Get)
		trips.PUT("/:id", h.Update)
		trips.DELETE("/:id", h.Delete)
		trips.POST("/:id/assign", h.Assign)
		trips.POST("/:id/unassign", h.Unassign)
		trips.POST("/:id/invoice", h.Invoice)
	}
}

func actorID(c *gin.Context) *int64 {
	id, err := middleware.GetUserID(c)
	if err != nil {
		return nil
	}
	return &id
}

func tripID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trip ID")
		return 0, false
	}
	return id, true
}

// List lists trips with optional filters
// GET /api/v1/trips?status=&date=&driver_id=&customer_id=&month=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	var f ListFilters
	f.Status = c.Query("status")

	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		f.Date = &d
	}
	if raw := c.Query("driver_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid driver_id")
			return
		}
		f.DriverID = &id
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid customer_id")
			return
		}
		f.CustomerID = &id
	}
	if raw := c.Query("month"); raw != "" {
		from, to, err := MonthWindow(raw)
		if err != nil {
			common.RespondError(c, err, "invalid month")
			return
		}
		f.MonthFrom = &from
		f.MonthTo = &to
	}

	params := pagination.ParseParams(c)
	items, total, err := h.svc.List(c.Request.Context(), f, params)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("failed to list trips", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list trips")
		return
	}
	common.SuccessResponseWithMeta(c, items, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// Create creates a trip
// POST /api/v1/trips
func (h *Handler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.svc.Create(c.Request.Context(), &req, actorID(c))
	if err != nil {
		common.RespondError(c, err, "failed to create trip")
		return
	}
	common.CreatedResponse(c, trip)
}

// Get fetches a trip with its current driver
// GET /api/v1/trips/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	trip, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, err, "failed to get trip")
		return
	}
	common.SuccessResponse(c, trip)
}

// Update updates a trip
// PUT /api/v1/trips/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.svc.Update(c.Request.Context(), id, &req, actorID(c))
	if err != nil {
		common.RespondError(c, err, "failed to update trip")
		return
	}
	common.SuccessResponse(c, trip)
}

// Delete removes a trip
// DELETE /api/v1/trips/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete trip")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}

// Assign links a driver to a trip
// POST /api/v1/trips/:id/assign
func (h *Handler) Assign(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.svc.Assign(c.Request.Context(), id, req.DriverID, actorID(c))
	if err != nil {
		common.RespondError(c, err, "failed to assign driver")
		return
	}
	common.SuccessResponse(c, trip)
}

// Unassign removes a trip's driver
// POST /api/v1/trips/:id/unassign
func (h *Handler) Unassign(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	trip, err := h.svc.Unassign(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, err, "failed to unassign driver")
		return
	}
	common.SuccessResponse(c, trip)
}

// Invoice stamps or clears the invoiced marker on one trip
// POST /api/v1/trips/:id/invoice
func (h *Handler) Invoice(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.svc.SetInvoiced(c.Request.Context(), id, req.Invoiced, actorID(c))
	if err != nil {
		common.RespondError(c, err, "failed to update invoiced state")
		return
	}
	common.SuccessResponse(c, trip)
}

// BulkInvoice flips the invoiced flag for a customer's month of trips
// POST /api/v1/trips/bulk-invoice
func (h *Handler) BulkInvoice(c *gin.Context) {
	var req BulkInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.svc.BulkInvoice(c.Request.Context(), req.CustomerID, req.Month, req.Invoiced, actorID(c))
	if err != nil {
		common.RespondError(c, err, "failed to bulk invoice")
		return
	}
	common.SuccessResponse(c, gin.H{"updated": count})
}
