package locations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/logger"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for locations
type Handler struct {
	repo *Repository
}

// NewHandler creates a new locations handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts location routes on the given group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	locations := api.Group("/locations")
	{
		locations.GET("", h.List)
		locations.POST("", h.Create)
		locations.GET("/search", h.Search)
		locations.GET("/:id", h.Get)
		locations.PUT("/:id", h.Update)
		locations.DELETE("/:id", h.Delete)
	}
}

// List lists all locations
// GET /api/v1/locations
func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("failed to list locations", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list locations")
		return
	}
	common.SuccessResponse(c, items)
}

// Search finds locations by partial name match
// GET /api/v1/locations/search?q=sola
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "query parameter q is required")
		return
	}

	items, err := h.repo.Search(c.Request.Context(), q)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to search locations")
		return
	}
	common.SuccessResponse(c, items)
}

// Create creates a new location
// POST /api/v1/locations
func (h *Handler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.repo.Create(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create location")
		return
	}
	common.CreatedResponse(c, location)
}

// Get fetches a location by ID
// GET /api/v1/locations/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid location ID")
		return
	}

	location, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "location not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get location")
		return
	}
	common.SuccessResponse(c, location)
}

// Update updates a location
// PUT /api/v1/locations/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid location ID")
		return
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.repo.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "location not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update location")
		return
	}
	common.SuccessResponse(c, location)
}

// Delete removes a location
// DELETE /api/v1/locations/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid location ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete location")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}
