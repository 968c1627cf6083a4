package pricing

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

// Handler handles HTTP requests for price plans and customer links
type Handler struct {
	repo *Repository
}

// NewHandler creates a new pricing handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts price plan routes on the given group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	plans := api.Group("/price-plans")
	{
		plans.GET("", h.ListPlans)
		plans.POST("", h.CreatePlan)
		plans.GET("/:id", h.GetPlan)
		plans.PUT("/:id", h.UpdatePlan)
		plans.DELETE("/:id", h.DeletePlan)
	}
	links := api.Group("/customer-price-plans")
	{
		links.GET("", h.ListLinks)
		links.POST("", h.CreateLink)
		links.DELETE("/:id", h.DeleteLink)
	}
}

// ListPlans lists all price plans
// GET /api/v1/price-plans
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.repo.ListPlans(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("failed to list price plans", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list price plans")
		return
	}
	common.SuccessResponse(c, plans)
}

// CreatePlan creates a new price plan
// POST /api/v1/price-plans
func (h *Handler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.repo.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create price plan")
		return
	}
	common.CreatedResponse(c, plan)
}

// GetPlan gets a price plan by ID
// GET /api/v1/price-plans/:id
func (h *Handler) GetPlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid plan ID")
		return
	}

	plan, err := h.repo.GetPlan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "price plan not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get price plan")
		return
	}
	common.SuccessResponse(c, plan)
}

// UpdatePlan updates a price plan
// PUT /api/v1/price-plans/:id
func (h *Handler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid plan ID")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.repo.UpdatePlan(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "price plan not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update price plan")
		return
	}
	common.SuccessResponse(c, plan)
}

// DeletePlan deletes a price plan
// DELETE /api/v1/price-plans/:id
func (h *Handler) DeletePlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid plan ID")
		return
	}

	if err := h.repo.DeletePlan(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete price plan")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}

// ListLinks lists customer plan links
// GET /api/v1/customer-price-plans
func (h *Handler) ListLinks(c *gin.Context) {
	links, err := h.repo.ListLinks(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list customer price plans")
		return
	}
	common.SuccessResponse(c, links)
}

// CreateLink links a customer to a plan (upsert by customer)
// POST /api/v1/customer-price-plans
func (h *Handler) CreateLink(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.repo.CreateLink(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to link customer to plan")
		return
	}
	common.CreatedResponse(c, link)
}

// DeleteLink removes a customer plan link
// DELETE /api/v1/customer-price-plans/:id
func (h *Handler) DeleteLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid link ID")
		return
	}

	if err := h.repo.DeleteLink(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete customer price plan")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}
