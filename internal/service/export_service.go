package service

import (
	"bytes"
	"fmt"
	"log"

	"rendix/internal/domain"
	"rendix/internal/export"
	"rendix/internal/metrics"
)

// ExportService builds downloadable spreadsheet exports from analyzed records.
type ExportService interface {
	// FuelDeliveriesXLSX renders fuel delivery records as an XLSX workbook.
	// Returns the file bytes and a dated filename.
	FuelDeliveriesXLSX(records []domain.Record, baseName string) ([]byte, string, error)
	// ExpensesCSV flattens reconciliation sheet records into expense rows.
	// Returns the file bytes (UTF-8 BOM prefixed) and a dated filename.
	ExpensesCSV(records []domain.Record, baseName string) ([]byte, string, error)
}

type exportService struct {
	m *metrics.Metrics
}

// NewExportService creates a new ExportService. A nil metrics value disables
// instrumentation.
func NewExportService(m *metrics.Metrics) ExportService {
	return &exportService{m: m}
}

func (s *exportService) FuelDeliveriesXLSX(records []domain.Record, baseName string) ([]byte, string, error) {
	if baseName == "" {
		baseName = "remitos"
	}
	data, err := export.FuelDeliveriesXLSX(records)
	if err != nil {
		log.Printf("exportService.FuelDeliveriesXLSX: %v", err)
		return nil, "", fmt.Errorf("exportService.FuelDeliveriesXLSX: %w", err)
	}
	s.count("xlsx")
	return data, export.BuildFilename(baseName, "xlsx"), nil
}

func (s *exportService) ExpensesCSV(records []domain.Record, baseName string) ([]byte, string, error) {
	if baseName == "" {
		baseName = "rendiciones"
	}

	var buf bytes.Buffer
	buf.Write(export.BOM)

	w := export.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, "", fmt.Errorf("exportService.ExpensesCSV: %w", err)
	}
	if err := w.WriteReconciliations(records); err != nil {
		return nil, "", fmt.Errorf("exportService.ExpensesCSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("exportService.ExpensesCSV: %w", err)
	}

	s.count("csv")
	return buf.Bytes(), export.BuildFilename(baseName, "csv"), nil
}

func (s *exportService) count(format string) {
	if s.m == nil {
		return
	}
	s.m.ExportsTotal.WithLabelValues(format).Inc()
}
