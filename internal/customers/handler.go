package customers

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

// Handler handles HTTP requests for customers
type Handler struct {
	repo *Repository
}

// NewHandler creates a new customers handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts customer routes on the given group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	customers := api.Group("/customers")
	{
		customers.GET("", h.List)
		customers.POST("", h.Create)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}

// List lists all customers
// GET /api/v1/customers
func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("failed to list customers", zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list customers")
		return
	}
	common.SuccessResponse(c, items)
}

// Create creates a new customer
// POST /api/v1/customers
func (h *Handler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.repo.Create(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create customer")
		return
	}
	common.CreatedResponse(c, customer)
}

// Get fetches a customer by ID
// GET /api/v1/customers/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid customer ID")
		return
	}

	customer, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "customer not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get customer")
		return
	}
	common.SuccessResponse(c, customer)
}

// Update updates a customer
// PUT /api/v1/customers/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid customer ID")
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.repo.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.ErrorResponse(c, http.StatusNotFound, "customer not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update customer")
		return
	}
	common.SuccessResponse(c, customer)
}

// Delete removes a customer
// DELETE /api/v1/customers/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid customer ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete customer")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}
