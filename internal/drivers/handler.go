package drivers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/logger"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for drivers and shifts
type Handler struct {
	repo *Repository
}

// NewHandler creates a new drivers handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts driver and shift routes on the given group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	drivers := api.Group("/drivers")
	{
		drivers.GET("", h.List)
		drivers.POST("", h.Create)
		drivers.GET("/:id", h.Get)
		drivers.PUT("/:id", h.Update)
		drivers.DELETE("/:id", h.Delete)
	}
	shifts := api.Group("/shifts")
	{
		shifts.GET("", h.ListShifts)
		shifts.POST("", h.CreateShift)
		shifts.DELETE("/:id", h.DeleteShift)
	}
}

// List lists all drivers
// GET /api/v1/drivers
func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("failed to list drivers", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list drivers")
		return
	}
	common.SuccessResponse(c, items)
}

// Create creates a new driver
// POST /api/v1/drivers
func (h *Handler) Create(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	driver, err := h.repo.Create(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create driver")
		return
	}
	common.CreatedResponse(c, driver)
}

// Get fetches a driver by ID
// GET /api/v1/drivers/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid driver ID")
		return
	}

	driver, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "driver not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get driver")
		return
	}
	common.SuccessResponse(c, driver)
}

// Update updates a driver
// PUT /api/v1/drivers/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid driver ID")
		return
	}

	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	driver, err := h.repo.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "driver not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update driver")
		return
	}
	common.SuccessResponse(c, driver)
}

// Delete removes a driver
// DELETE /api/v1/drivers/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid driver ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete driver")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}

// ListShifts lists shifts, optionally filtered by driver
// GET /api/v1/shifts?driver_id=3
func (h *Handler) ListShifts(c *gin.Context) {
	var driverID *int64
	if raw := c.Query("driver_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid driver_id")
			return
		}
		driverID = &id
	}

	items, err := h.repo.ListShifts(c.Request.Context(), driverID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list shifts")
		return
	}
	common.SuccessResponse(c, items)
}

// CreateShift creates a new shift
// POST /api/v1/shifts
func (h *Handler) CreateShift(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.EndAt.After(req.StartAt) {
		common.ErrorResponse(c, http.StatusBadRequest, "end_at must be after start_at")
		return
	}

	shift, err := h.repo.CreateShift(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create shift")
		return
	}
	common.CreatedResponse(c, shift)
}

// DeleteShift removes a shift
// DELETE /api/v1/shifts/:id
func (h *Handler) DeleteShift(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid shift ID")
		return
	}

	if err := h.repo.DeleteShift(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete shift")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}
