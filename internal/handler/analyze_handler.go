package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rendix/internal/domain"
	"rendix/internal/service"
)

// AnalyzeHandler handles document analysis endpoints.
type AnalyzeHandler struct {
	analysisService service.AnalysisService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analysisService service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisService: analysisService}
}

// Receipt handles POST /api/v1/analyze/receipt
// @Summary      Analyze an expense receipt photo
// @Description  Extracts a normalized expense record from a photographed receipt
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body AnalyzeRequest true "Image URL and optional conductor context"
// @Success      200 {object} APIResponse{data=service.AnalysisResult} "Extracted record"
// @Failure      400 {object} APIResponse "Invalid request"
// @Failure      422 {object} APIResponse "Model output unusable"
// @Failure      502 {object} APIResponse "Model invocation failed"
// @Router       /analyze/receipt [post]
func (h *AnalyzeHandler) Receipt(c *gin.Context) {
	h.analyze(c, domain.DocumentTypeReceipt)
}

// FuelDelivery handles POST /api/v1/analyze/fuel-delivery
// @Summary      Analyze a fuel delivery slip photo
// @Description  Extracts a normalized fuel delivery record from a photographed slip
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body AnalyzeRequest true "Image URL and optional conductor context"
// @Success      200 {object} APIResponse{data=service.AnalysisResult} "Extracted record"
// @Failure      400 {object} APIResponse "Invalid request"
// @Failure      422 {object} APIResponse "Model output unusable"
// @Failure      502 {object} APIResponse "Model invocation failed"
// @Router       /analyze/fuel-delivery [post]
func (h *AnalyzeHandler) FuelDelivery(c *gin.Context) {
	h.analyze(c, domain.DocumentTypeFuelDelivery)
}

// Reconciliation handles POST /api/v1/analyze/reconciliation
// @Summary      Analyze an expense reconciliation sheet photo
// @Description  Extracts a normalized reconciliation record and resolves the handwritten driver name against the registered roster
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body AnalyzeRequest true "Image URL and optional conductor context"
// @Success      200 {object} APIResponse{data=service.AnalysisResult} "Extracted record with resolved_identity when a roster match was found"
// @Failure      400 {object} APIResponse "Invalid request"
// @Failure      422 {object} APIResponse "Model output unusable"
// @Failure      502 {object} APIResponse "Model invocation failed"
// @Router       /analyze/reconciliation [post]
func (h *AnalyzeHandler) Reconciliation(c *gin.Context) {
	h.analyze(c, domain.DocumentTypeReconciliation)
}

func (h *AnalyzeHandler) analyze(c *gin.Context, docType domain.DocumentType) {
	var req struct {
		ImageURL             string `json:"image_url" binding:"required"`
		ConductorDescription string `json:"conductor_description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "image_url is required")
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), docType, domain.ExtractionRequest{
		ImageReference: req.ImageURL,
		FreeTextHint:   req.ConductorDescription,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
