package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motorent/fleet-api/pkg/common"
	"github.com/motorent/fleet-api/pkg/middleware"
	"github.com/motorent/fleet-api/pkg/models"
)

// Handler handles HTTP requests for the service catalog
type Handler struct {
	service *Service
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create creates a service type
// POST /api/v1/service-types
func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceTypeRequest
	if !common.BindJSON(c, &req) {
		return
	}

	st, err := h.service.CreateServiceType(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create service type") {
		return
	}

	common.CreatedResponse(c, st)
}

// Get returns a single service type
// GET /api/v1/service-types/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "service type ID")
	if !ok {
		return
	}

	st, err := h.service.GetServiceType(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get service type") {
		return
	}

	common.SuccessResponse(c, st)
}

// List returns service types
// GET /api/v1/service-types?include_inactive=true&limit=50&offset=0
func (h *Handler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, total, err := h.service.ListServiceTypes(c.Request.Context(), includeInactive, limit, offset)
	if common.HandleServiceError(c, err, "failed to list service types") {
		return
	}

	common.SuccessResponseWithMeta(c, resp, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// Update updates a service type
// PUT /api/v1/service-types/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "service type ID")
	if !ok {
		return
	}

	var req UpdateServiceTypeRequest
	if !common.BindJSON(c, &req) {
		return
	}

	st, err := h.service.UpdateServiceType(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update service type") {
		return
	}

	common.SuccessResponse(c, st)
}

// Deactivate soft-deactivates a service type
// POST /api/v1/service-types/:id/deactivate
func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "service type ID")
	if !ok {
		return
	}

	err := h.service.DeactivateServiceType(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to deactivate service type") {
		return
	}

	common.SuccessResponse(c, gin.H{"deactivated": true})
}

// Delete hard-deletes an unreferenced service type
// DELETE /api/v1/service-types/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "service type ID")
	if !ok {
		return
	}

	err := h.service.DeleteServiceType(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to delete service type") {
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

// RegisterRoutes registers catalog routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	types := rg.Group("/service-types")
	{
		types.GET("", h.List)
		types.GET("/:id", h.Get)

		manage := types.Group("")
		manage.Use(middleware.RequireRole(models.RoleManager, models.RoleAdmin))
		{
			manage.POST("", h.Create)
			manage.PUT("/:id", h.Update)
			manage.POST("/:id/deactivate", h.Deactivate)
			manage.DELETE("/:id", h.Delete)
		}
	}
}
