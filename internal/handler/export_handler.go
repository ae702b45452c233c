package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rendix/internal/domain"
	"rendix/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// ExportHandler handles spreadsheet export endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// FuelDeliveries handles POST /api/v1/exports/fuel-deliveries
// @Summary      Export fuel delivery records as XLSX
// @Description  Renders analyzed fuel delivery records into a downloadable XLSX workbook
// @Tags         exports
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        request body ExportRequest true "Records to export and optional filename base"
// @Success      200 {file} binary "XLSX workbook"
// @Failure      400 {object} APIResponse "Invalid request"
// @Failure      500 {object} APIResponse "Export failed"
// @Router       /exports/fuel-deliveries [post]
func (h *ExportHandler) FuelDeliveries(c *gin.Context) {
	records, baseName, ok := bindExportRequest(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.FuelDeliveriesXLSX(records, baseName)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

// Expenses handles POST /api/v1/exports/expenses
// @Summary      Export reconciliation sheets as an expense CSV
// @Description  Flattens analyzed reconciliation sheet records into one expense row per entry
// @Tags         exports
// @Accept       json
// @Produce      text/csv
// @Param        request body ExportRequest true "Records to export and optional filename base"
// @Success      200 {file} binary "CSV file with UTF-8 BOM"
// @Failure      400 {object} APIResponse "Invalid request"
// @Failure      500 {object} APIResponse "Export failed"
// @Router       /exports/expenses [post]
func (h *ExportHandler) Expenses(c *gin.Context) {
	records, baseName, ok := bindExportRequest(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExpensesCSV(records, baseName)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeCSV, data)
}

func bindExportRequest(c *gin.Context) (records []domain.Record, baseName string, ok bool) {
	var req struct {
		Records  []domain.Record `json:"records" binding:"required"`
		Filename string          `json:"filename"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "records is required")
		return nil, "", false
	}
	if len(req.Records) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "records must not be empty")
		return nil, "", false
	}
	return req.Records, req.Filename, true
}
