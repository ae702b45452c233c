package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// AnalyzeRequest represents the analyze request body shared by all document types.
type AnalyzeRequest struct {
	ImageURL             string `json:"image_url" binding:"required" example:"https://storage.example.com/images/3f2a9c.jpg"`
	ConductorDescription string `json:"conductor_description" example:"Chofer Juan Pérez, camión PPU ABCD12, viaje a Mendoza"`
}

// ExportRequest represents the export request body shared by all export formats.
type ExportRequest struct {
	Records  []map[string]interface{} `json:"records" binding:"required"`
	Filename string                   `json:"filename" example:"remitos_octubre"`
}

// UpsertDriverRequest represents the driver registration request body.
type UpsertDriverRequest struct {
	FullName   string `json:"full_name" binding:"required" example:"Juan Alberto Pérez"`
	Identifier string `json:"identifier" binding:"required" example:"12345678-9"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}
