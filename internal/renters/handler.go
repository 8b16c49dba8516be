package renters

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motorent/fleet-api/pkg/common"
)

// Handler handles HTTP requests for renters
type Handler struct {
	service *Service
}

// NewHandler creates a new renters handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create registers a renter
// POST /api/v1/renters
func (h *Handler) Create(c *gin.Context) {
	var req CreateRenterRequest
	if !common.BindJSON(c, &req) {
		return
	}

	renter, err := h.service.Create(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create renter") {
		return
	}

	common.CreatedResponse(c, renter)
}

// Get returns a renter
// GET /api/v1/renters/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "renter ID")
	if !ok {
		return
	}

	renter, err := h.service.Get(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get renter") {
		return
	}

	common.SuccessResponse(c, renter)
}

// List returns renters matching an optional search
// GET /api/v1/renters?search=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, total, err := h.service.List(c.Request.Context(), search, limit, offset)
	if common.HandleServiceError(c, err, "failed to list renters") {
		return
	}

	common.SuccessResponseWithMeta(c, resp, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// Update updates a renter
// PUT /api/v1/renters/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "renter ID")
	if !ok {
		return
	}

	var req UpdateRenterRequest
	if !common.BindJSON(c, &req) {
		return
	}

	renter, err := h.service.Update(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update renter") {
		return
	}

	common.SuccessResponse(c, renter)
}

// GetStats returns a renter's completed rental aggregate
// GET /api/v1/renters/:id/stats
func (h *Handler) GetStats(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "renter ID")
	if !ok {
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to aggregate renter stats") {
		return
	}

	common.SuccessResponse(c, stats)
}

// RegisterRoutes registers renter routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	r := rg.Group("/renters")
	{
		r.GET("", h.List)
		r.GET("/:id", h.Get)
		r.GET("/:id/stats", h.GetStats)
		r.POST("", h.Create)
		r.PUT("/:id", h.Update)
	}
}
