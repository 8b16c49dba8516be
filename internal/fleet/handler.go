package fleet

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motorent/fleet-api/pkg/common"
	"github.com/motorent/fleet-api/pkg/middleware"
	"github.com/motorent/fleet-api/pkg/models"
)

// Handler handles HTTP requests for the fleet directory
type Handler struct {
	service *Service
}

// NewHandler creates a new fleet handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ========================================
// OFFICES
// ========================================

// CreateOffice creates an office
// POST /api/v1/offices
func (h *Handler) CreateOffice(c *gin.Context) {
	var req CreateOfficeRequest
	if !common.BindJSON(c, &req) {
		return
	}

	office, err := h.service.CreateOffice(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create office") {
		return
	}

	common.CreatedResponse(c, office)
}

// GetOffice returns an office
// GET /api/v1/offices/:id
func (h *Handler) GetOffice(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "office ID")
	if !ok {
		return
	}

	office, err := h.service.GetOffice(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get office") {
		return
	}

	common.SuccessResponse(c, office)
}

// ListOffices returns all offices
// GET /api/v1/offices
func (h *Handler) ListOffices(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	offices, err := h.service.ListOffices(c.Request.Context(), includeInactive)
	if common.HandleServiceError(c, err, "failed to list offices") {
		return
	}

	common.SuccessResponse(c, offices)
}

// UpdateOffice updates an office
// PUT /api/v1/offices/:id
func (h *Handler) UpdateOffice(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "office ID")
	if !ok {
		return
	}

	var req UpdateOfficeRequest
	if !common.BindJSON(c, &req) {
		return
	}

	office, err := h.service.UpdateOffice(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update office") {
		return
	}

	common.SuccessResponse(c, office)
}

// ========================================
// MODELS
// ========================================

// CreateModel creates a vehicle model
// POST /api/v1/models
func (h *Handler) CreateModel(c *gin.Context) {
	var req CreateModelRequest
	if !common.BindJSON(c, &req) {
		return
	}

	model, err := h.service.CreateModel(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create vehicle model") {
		return
	}

	common.CreatedResponse(c, model)
}

// GetModel returns a vehicle model
// GET /api/v1/models/:id
func (h *Handler) GetModel(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "model ID")
	if !ok {
		return
	}

	model, err := h.service.GetModel(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get vehicle model") {
		return
	}

	common.SuccessResponse(c, model)
}

// ListModels returns all vehicle models
// GET /api/v1/models
func (h *Handler) ListModels(c *gin.Context) {
	models, err := h.service.ListModels(c.Request.Context())
	if common.HandleServiceError(c, err, "failed to list vehicle models") {
		return
	}

	common.SuccessResponse(c, models)
}

// DeleteModel deletes a vehicle model
// DELETE /api/v1/models/:id
func (h *Handler) DeleteModel(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "model ID")
	if !ok {
		return
	}

	err := h.service.DeleteModel(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to delete vehicle model") {
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

// ========================================
// VEHICLES
// ========================================

// CreateVehicle registers a vehicle
// POST /api/v1/vehicles
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if !common.BindJSON(c, &req) {
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to create vehicle") {
		return
	}

	common.CreatedResponse(c, vehicle)
}

// GetVehicle returns a vehicle
// GET /api/v1/vehicles/:id
func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "vehicle ID")
	if !ok {
		return
	}

	vehicle, err := h.service.GetVehicle(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get vehicle") {
		return
	}

	common.SuccessResponse(c, vehicle)
}

// ListVehicles returns vehicles
// GET /api/v1/vehicles?office_id=&status=&limit=&offset=
func (h *Handler) ListVehicles(c *gin.Context) {
	officeID, ok := common.ParseUUIDQuery(c, "office_id", "office ID", false)
	if !ok {
		return
	}
	status := VehicleStatus(c.Query("status"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, total, err := h.service.ListVehicles(c.Request.Context(), officeID, status, limit, offset)
	if common.HandleServiceError(c, err, "failed to list vehicles") {
		return
	}

	common.SuccessResponseWithMeta(c, resp, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// UpdateVehicle updates vehicle details
// PUT /api/v1/vehicles/:id
func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "vehicle ID")
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if !common.BindJSON(c, &req) {
		return
	}

	vehicle, err := h.service.UpdateVehicle(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update vehicle") {
		return
	}

	common.SuccessResponse(c, vehicle)
}

// UpdateOdometer records a new odometer reading
// POST /api/v1/vehicles/:id/odometer
func (h *Handler) UpdateOdometer(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "vehicle ID")
	if !ok {
		return
	}

	var req UpdateOdometerRequest
	if !common.BindJSON(c, &req) {
		return
	}

	vehicle, err := h.service.UpdateOdometer(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update odometer") {
		return
	}

	common.SuccessResponse(c, vehicle)
}

// UpdateStatus changes a vehicle status
// POST /api/v1/vehicles/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "vehicle ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !common.BindJSON(c, &req) {
		return
	}

	vehicle, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if common.HandleServiceError(c, err, "failed to update vehicle status") {
		return
	}

	common.SuccessResponse(c, vehicle)
}

// RegisterRoutes registers fleet routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireRole(models.RoleManager, models.RoleAdmin)

	offices := rg.Group("/offices")
	{
		offices.GET("", h.ListOffices)
		offices.GET("/:id", h.GetOffice)
		offices.POST("", manage, h.CreateOffice)
		offices.PUT("/:id", manage, h.UpdateOffice)
	}

	vehicleModels := rg.Group("/models")
	{
		vehicleModels.GET("", h.ListModels)
		vehicleModels.GET("/:id", h.GetModel)
		vehicleModels.POST("", manage, h.CreateModel)
		vehicleModels.DELETE("/:id", manage, h.DeleteModel)
	}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.POST("", manage, h.CreateVehicle)
		vehicles.PUT("/:id", manage, h.UpdateVehicle)
		vehicles.POST("/:id/odometer", h.UpdateOdometer)
		vehicles.POST("/:id/status", h.UpdateStatus)
	}
}
