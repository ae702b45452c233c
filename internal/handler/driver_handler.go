package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rendix/internal/domain"
	"rendix/internal/service"
)

// DriverHandler handles driver roster management endpoints.
type DriverHandler struct {
	driverService service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// List handles GET /api/v1/drivers
// @Summary      List registered drivers
// @Description  Lists the active driver roster used by reconciliation identity resolution
// @Tags         drivers
// @Produce      json
// @Success      200 {object} APIResponse{data=[]domain.DirectoryEntry}
// @Failure      503 {object} APIResponse "Roster database unavailable"
// @Router       /drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	entries, err := h.driverService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}

// Upsert handles PUT /api/v1/drivers
// @Summary      Register or update a driver
// @Description  Inserts a driver by identifier, or reactivates and renames an existing one
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        request body UpsertDriverRequest true "Driver details"
// @Success      200 {object} APIResponse{data=MessageResponse}
// @Failure      400 {object} APIResponse "Invalid request"
// @Router       /drivers [put]
func (h *DriverHandler) Upsert(c *gin.Context) {
	var req struct {
		FullName   string `json:"full_name" binding:"required"`
		Identifier string `json:"identifier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "full_name and identifier are required")
		return
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Identifier) == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "full_name and identifier must not be blank")
		return
	}

	err := h.driverService.Upsert(c.Request.Context(), domain.DirectoryEntry{
		FullName:   req.FullName,
		Identifier: req.Identifier,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "driver registered"})
}

// Deactivate handles DELETE /api/v1/drivers/:identifier
// @Summary      Deactivate a driver
// @Description  Soft-deletes a driver so it no longer appears in the resolution roster
// @Tags         drivers
// @Produce      json
// @Param        identifier path string true "Driver identifier"
// @Success      200 {object} APIResponse{data=MessageResponse}
// @Failure      404 {object} APIResponse "Driver not found"
// @Router       /drivers/{identifier} [delete]
func (h *DriverHandler) Deactivate(c *gin.Context) {
	identifier := c.Param("identifier")

	if err := h.driverService.Deactivate(c.Request.Context(), identifier); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "driver deactivated"})
}
