package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rendix/internal/domain"
	"rendix/internal/handler"
	"rendix/internal/service"
	"rendix/mocks"
)

func postJSON(t *testing.T, path string, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAnalyzeHandler_Receipt_Success(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalyzeHandler(mockSvc)

	mockSvc.On("Analyze", mock.Anything, domain.DocumentTypeReceipt, domain.ExtractionRequest{
		ImageReference: "https://files.example.com/boleta.jpg",
	}).Return(&service.AnalysisResult{
		DocumentType: domain.DocumentTypeReceipt,
		Record:       domain.Record{"total": 15990.0, "moneda": "CLP"},
		Model:        "google/gemini-2.5-flash-lite-preview-09-2025",
	}, nil)

	w, c := postJSON(t, "/api/v1/analyze/receipt", `{"image_url": "https://files.example.com/boleta.jpg"}`)
	h.Receipt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "receipt", data["document_type"])
	assert.Equal(t, "google/gemini-2.5-flash-lite-preview-09-2025", data["model"])

	record, ok := data["record"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 15990.0, record["total"])
	assert.Equal(t, "CLP", record["moneda"])
	mockSvc.AssertExpectations(t)
}

func TestAnalyzeHandler_Receipt_MissingImageURL(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalyzeHandler(mockSvc)

	w, c := postJSON(t, "/api/v1/analyze/receipt", `{}`)
	h.Receipt(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeHandler_Receipt_HintForwarded(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalyzeHandler(mockSvc)

	mockSvc.On("Analyze", mock.Anything, domain.DocumentTypeReceipt, domain.ExtractionRequest{
		ImageReference: "https://files.example.com/boleta.jpg",
		FreeTextHint:   "peaje Cristo Redentor, pagado en pesos argentinos",
	}).Return(&service.AnalysisResult{DocumentType: domain.DocumentTypeReceipt}, nil)

	w, c := postJSON(t, "/api/v1/analyze/receipt",
		`{"image_url": "https://files.example.com/boleta.jpg", "conductor_description": "peaje Cristo Redentor, pagado en pesos argentinos"}`)
	h.Receipt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAnalyzeHandler_Receipt_RecordInvalid(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalyzeHandler(mockSvc)
	mockSvc.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrRecordInvalid)

	w, c := postJSON(t, "/api/v1/analyze/receipt", `{"image_url": "https://files.example.com/boleta.jpg"}`)
	h.Receipt(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RECORD_INVALID", resp.Error.Code)
}

func TestAnalyzeHandler_Receipt_ModelInvocationFailed(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalyzeHandler(mockSvc)
	mockSvc.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrModelInvocation)

	w, c := postJSON(t, "/api/v1/analyze/receipt", `{"image_url": "https://files.example.com/boleta.jpg"}`)
	h.Receipt(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MODEL_INVOCATION_FAILED", resp.Error.Code)
}

func TestAnalyzeHandler_FuelDelivery_Success(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalyzeHandler(mockSvc)

	mockSvc.On("Analyze", mock.Anything, domain.DocumentTypeFuelDelivery, mock.Anything).
		Return(&service.AnalysisResult{
			DocumentType: domain.DocumentTypeFuelDelivery,
			Record:       domain.Record{"patente": "AB123CD", "litros": 350.0},
		}, nil)

	w, c := postJSON(t, "/api/v1/analyze/fuel-delivery", `{"image_url": "https://files.example.com/remito.jpg"}`)
	h.FuelDelivery(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "fuel_delivery", data["document_type"])
	mockSvc.AssertExpectations(t)
}

func TestAnalyzeHandler_Reconciliation_Success(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalyzeHandler(mockSvc)

	record := domain.Record{"chofer": "Juan Albert Peres"}
	record[domain.KeyResolvedIdentity] = &domain.ResolvedIdentity{
		FullName:   "Juan Alberto Perez",
		Identifier: "12345678-9",
	}
	mockSvc.On("Analyze", mock.Anything, domain.DocumentTypeReconciliation, mock.Anything).
		Return(&service.AnalysisResult{
			DocumentType: domain.DocumentTypeReconciliation,
			Record:       record,
		}, nil)

	w, c := postJSON(t, "/api/v1/analyze/reconciliation", `{"image_url": "https://files.example.com/rendicion.jpg"}`)
	h.Reconciliation(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "reconciliation_sheet", data["document_type"])

	rec, ok := data["record"].(map[string]interface{})
	require.True(t, ok)
	identity, ok := rec["resolved_identity"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Juan Alberto Perez", identity["full_name"])
	assert.Equal(t, "12345678-9", identity["identifier"])
}
