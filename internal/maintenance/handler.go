package maintenance

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motorent/fleet-api/pkg/common"
	"github.com/motorent/fleet-api/pkg/middleware"
	"github.com/motorent/fleet-api/pkg/models"
)

// Handler handles HTTP requests for the maintenance feature
type Handler struct {
	service *Service
}

// NewHandler creates a new maintenance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePlan creates a plan entry
// POST /api/v1/maintenance/plans
func (h *Handler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if !common.BindJSON(c, &req) {
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create maintenance plan") {
		return
	}

	common.CreatedResponse(c, plan)
}

// GetPlan returns a plan entry
// GET /api/v1/maintenance/plans/:id
func (h *Handler) GetPlan(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "plan ID")
	if !ok {
		return
	}

	plan, err := h.service.GetPlan(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get maintenance plan") {
		return
	}

	common.SuccessResponse(c, plan)
}

// ListPlans returns the plan entries of one vehicle model
// GET /api/v1/maintenance/plans?model_id=
func (h *Handler) ListPlans(c *gin.Context) {
	modelID, ok := common.ParseUUIDQuery(c, "model_id", "model ID", true)
	if !ok {
		return
	}

	plans, err := h.service.ListPlansByModel(c.Request.Context(), modelID)
	if common.HandleServiceError(c, err, "failed to list maintenance plans") {
		return
	}

	common.SuccessResponse(c, plans)
}

// UpdatePlan updates a plan entry
// PUT /api/v1/maintenance/plans/:id
func (h *Handler) UpdatePlan(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "plan ID")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if !common.BindJSON(c, &req) {
		return
	}

	plan, err := h.service.UpdatePlan(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update maintenance plan") {
		return
	}

	common.SuccessResponse(c, plan)
}

// DeletePlan deletes a plan entry
// DELETE /api/v1/maintenance/plans/:id
func (h *Handler) DeletePlan(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "plan ID")
	if !ok {
		return
	}

	err := h.service.DeletePlan(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to delete maintenance plan") {
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

// CreateLog records a performed service
// POST /api/v1/maintenance/logs
func (h *Handler) CreateLog(c *gin.Context) {
	var req CreateLogRequest
	if !common.BindJSON(c, &req) {
		return
	}

	log, err := h.service.CreateLog(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create maintenance log") {
		return
	}

	common.CreatedResponse(c, log)
}

// GetLog returns a log entry with its cost lines
// GET /api/v1/maintenance/logs/:id
func (h *Handler) GetLog(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "log ID")
	if !ok {
		return
	}

	log, err := h.service.GetLog(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get maintenance log") {
		return
	}

	common.SuccessResponse(c, log)
}

// ListLogs returns a vehicle's service history
// GET /api/v1/maintenance/logs?vehicle_id=&limit=&offset=
func (h *Handler) ListLogs(c *gin.Context) {
	vehicleID, ok := common.ParseUUIDQuery(c, "vehicle_id", "vehicle ID", true)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, total, err := h.service.ListLogs(c.Request.Context(), vehicleID, limit, offset)
	if common.HandleServiceError(c, err, "failed to list maintenance logs") {
		return
	}

	common.SuccessResponseWithMeta(c, logs, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// ListDue returns the due board
// GET /api/v1/maintenance/due?office_id=&vehicle_id=
func (h *Handler) ListDue(c *gin.Context) {
	officeID, ok := common.ParseUUIDQuery(c, "office_id", "office ID", false)
	if !ok {
		return
	}
	vehicleID, ok := common.ParseUUIDQuery(c, "vehicle_id", "vehicle ID", false)
	if !ok {
		return
	}

	rows, err := h.service.ListDue(c.Request.Context(), officeID, vehicleID)
	if common.HandleServiceError(c, err, "failed to compute due board") {
		return
	}

	common.SuccessResponse(c, DueListResponse{Rows: rows})
}

// PerformService closes one due row by appending a log entry
// POST /api/v1/maintenance/perform-service
func (h *Handler) PerformService(c *gin.Context) {
	var req PerformServiceRequest
	if !common.BindJSON(c, &req) {
		return
	}

	log, err := h.service.PerformService(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to perform service") {
		return
	}

	common.CreatedResponse(c, log)
}

// RegisterRoutes registers maintenance routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireRole(models.RoleManager, models.RoleAdmin)
	work := middleware.RequireRole(models.RoleMechanic, models.RoleManager, models.RoleAdmin)

	m := rg.Group("/maintenance")
	{
		m.GET("/plans", h.ListPlans)
		m.GET("/plans/:id", h.GetPlan)
		m.POST("/plans", manage, h.CreatePlan)
		m.PUT("/plans/:id", manage, h.UpdatePlan)
		m.DELETE("/plans/:id", manage, h.DeletePlan)

		m.GET("/logs", h.ListLogs)
		m.GET("/logs/:id", h.GetLog)
		m.POST("/logs", work, h.CreateLog)

		m.GET("/due", h.ListDue)
		m.POST("/perform-service", work, h.PerformService)
	}
}
