package payouts

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motorent/fleet-api/pkg/common"
	"github.com/motorent/fleet-api/pkg/middleware"
	"github.com/motorent/fleet-api/pkg/models"
)

// Handler handles HTTP requests for payouts
type Handler struct {
	service *Service
}

// NewHandler creates a new payouts handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Recalculate computes a payout period
// POST /api/v1/payouts/recalculate
func (h *Handler) Recalculate(c *gin.Context) {
	var req RecalculateRequest
	if !common.BindJSON(c, &req) {
		return
	}

	payout, err := h.service.Recalculate(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to recalculate payout") {
		return
	}

	common.CreatedResponse(c, payout)
}

// Get returns a payout with its lines
// GET /api/v1/payouts/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "payout ID")
	if !ok {
		return
	}

	payout, err := h.service.Get(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get payout") {
		return
	}

	common.SuccessResponse(c, payout)
}

// List returns payout history
// GET /api/v1/payouts?office_id=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	officeID, ok := common.ParseUUIDQuery(c, "office_id", "office ID", false)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payouts, total, err := h.service.List(c.Request.Context(), officeID, limit, offset)
	if common.HandleServiceError(c, err, "failed to list payouts") {
		return
	}

	common.SuccessResponseWithMeta(c, payouts, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// RegisterRoutes registers payout routes. Payout data is salary data,
// so the whole group is manager-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireRole(models.RoleManager, models.RoleAdmin)

	p := rg.Group("/payouts", manage)
	{
		p.GET("", h.List)
		p.GET("/:id", h.Get)
		p.POST("/recalculate", h.Recalculate)
	}
}
