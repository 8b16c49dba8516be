package orders

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motorent/fleet-api/pkg/common"
)

// Handler handles HTTP requests for orders
type Handler struct {
	service *Service
}

// NewHandler creates a new orders handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create drafts an order
// POST /api/v1/orders
func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if !common.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Create(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create order") {
		return
	}

	common.CreatedResponse(c, order)
}

// Get returns an order
// GET /api/v1/orders/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "order ID")
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get order") {
		return
	}

	common.SuccessResponse(c, order)
}

// List returns a page of orders
// GET /api/v1/orders?office_id=&renter_id=&status=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	officeID, ok := common.ParseUUIDQuery(c, "office_id", "office ID", false)
	if !ok {
		return
	}
	renterID, ok := common.ParseUUIDQuery(c, "renter_id", "renter ID", false)
	if !ok {
		return
	}
	status := OrderStatus(c.Query("status"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, total, err := h.service.List(c.Request.Context(), officeID, renterID, status, limit, offset)
	if common.HandleServiceError(c, err, "failed to list orders") {
		return
	}

	common.SuccessResponseWithMeta(c, resp, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// Update adjusts a draft order
// PUT /api/v1/orders/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "order ID")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if !common.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Update(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update order") {
		return
	}

	common.SuccessResponse(c, order)
}

// Start hands the vehicle over
// POST /api/v1/orders/:id/start
func (h *Handler) Start(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "order ID")
	if !ok {
		return
	}

	order, err := h.service.Start(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to start order") {
		return
	}

	common.SuccessResponse(c, order)
}

// Complete closes an active order
// POST /api/v1/orders/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "order ID")
	if !ok {
		return
	}

	var req CompleteOrderRequest
	if !common.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Complete(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to complete order") {
		return
	}

	common.SuccessResponse(c, order)
}

// Cancel voids an order
// POST /api/v1/orders/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "order ID")
	if !ok {
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to cancel order") {
		return
	}

	common.SuccessResponse(c, order)
}

// RegisterRoutes registers order routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	o := rg.Group("/orders")
	{
		o.GET("", h.List)
		o.GET("/:id", h.Get)
		o.POST("", h.Create)
		o.PUT("/:id", h.Update)
		o.POST("/:id/start", h.Start)
		o.POST("/:id/complete", h.Complete)
		o.POST("/:id/cancel", h.Cancel)
	}
}
