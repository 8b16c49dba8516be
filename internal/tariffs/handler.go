package tariffs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motorent/fleet-api/pkg/common"
	"github.com/motorent/fleet-api/pkg/middleware"
	"github.com/motorent/fleet-api/pkg/models"
)

// Handler handles HTTP requests for tariffs
type Handler struct {
	service *Service
}

// NewHandler creates a new tariffs handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create creates a tariff
// POST /api/v1/tariffs
func (h *Handler) Create(c *gin.Context) {
	var req CreateTariffRequest
	if !common.BindJSON(c, &req) {
		return
	}

	tariff, err := h.service.Create(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create tariff") {
		return
	}

	common.CreatedResponse(c, tariff)
}

// Get returns a tariff
// GET /api/v1/tariffs/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "tariff ID")
	if !ok {
		return
	}

	tariff, err := h.service.Get(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get tariff") {
		return
	}

	common.SuccessResponse(c, tariff)
}

// ListByModel returns a model's tariff ladder
// GET /api/v1/tariffs?model_id=
func (h *Handler) ListByModel(c *gin.Context) {
	modelID, ok := common.ParseUUIDQuery(c, "model_id", "model ID", true)
	if !ok {
		return
	}

	tariffs, err := h.service.ListByModel(c.Request.Context(), modelID)
	if common.HandleServiceError(c, err, "failed to list tariffs") {
		return
	}

	common.SuccessResponse(c, tariffs)
}

// Update changes a tariff price
// PUT /api/v1/tariffs/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "tariff ID")
	if !ok {
		return
	}

	var req UpdateTariffRequest
	if !common.BindJSON(c, &req) {
		return
	}

	tariff, err := h.service.Update(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update tariff") {
		return
	}

	common.SuccessResponse(c, tariff)
}

// Delete removes a tariff
// DELETE /api/v1/tariffs/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "tariff ID")
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to delete tariff") {
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

// Quote resolves prices for a rental length
// GET /api/v1/tariffs/quote?model_id=&days=
func (h *Handler) Quote(c *gin.Context) {
	modelID, ok := common.ParseUUIDQuery(c, "model_id", "model ID", true)
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "days must be an integer")
		return
	}

	quote, svcErr := h.service.QuoteFor(c.Request.Context(), modelID, days)
	if common.HandleServiceError(c, svcErr, "failed to resolve tariff quote") {
		return
	}

	common.SuccessResponse(c, quote)
}

// RegisterRoutes registers tariff routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireRole(models.RoleManager, models.RoleAdmin)

	t := rg.Group("/tariffs")
	{
		t.GET("", h.ListByModel)
		t.GET("/quote", h.Quote)
		t.GET("/:id", h.Get)
		t.POST("", manage, h.Create)
		t.PUT("/:id", manage, h.Update)
		t.DELETE("/:id", manage, h.Delete)
	}
}
