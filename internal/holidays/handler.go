package holidays

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/logger"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for holidays
type Handler struct {
	repo *Repository
}

// NewHandler creates a new holidays handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts holiday routes on the given group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	holidays := api.Group("/holidays")
	{
		holidays.GET("", h.List)
		holidays.POST("", h.Create)
		holidays.DELETE("/:id", h.Delete)
	}
}

// List lists all holidays ordered by date
// GET /api/v1/holidays
func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("failed to list holidays", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list holidays")
		return
	}
	common.SuccessResponse(c, items)
}

// Create registers a holiday, replacing the name if the date already exists
// POST /api/v1/holidays
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	holiday, err := h.repo.Create(c.Request.Context(), date, req.Name, req.CountryCode)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create holiday")
		return
	}
	common.CreatedResponse(c, holiday)
}

// Delete removes a holiday
// DELETE /api/v1/holidays/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid holiday ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete holiday")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}
