package service_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendix/internal/domain"
	"rendix/internal/export"
	"rendix/internal/service"
)

func TestExportFuelDeliveriesXLSX(t *testing.T) {
	svc := service.NewExportService(nil)

	records := []domain.Record{{
		"numero_remito":    "0001-00044321",
		"fecha":            "14/10/2025",
		"patente":          "AB123CD",
		"litros":           350.0,
		"nombre_conductor": "Juan Alberto Perez",
	}}

	data, filename, err := svc.FuelDeliveriesXLSX(records, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
	assert.Regexp(t, `^remitos_\d{4}-\d{2}-\d{2}\.xlsx$`, filename)
}

func TestExportFuelDeliveriesXLSXCustomName(t *testing.T) {
	svc := service.NewExportService(nil)

	_, filename, err := svc.FuelDeliveriesXLSX(nil, "remitos agosto")
	require.NoError(t, err)
	assert.Regexp(t, `^remitos_agosto_\d{4}-\d{2}-\d{2}\.xlsx$`, filename)
}

func TestExportExpensesCSV(t *testing.T) {
	svc := service.NewExportService(nil)

	records := []domain.Record{{
		"chofer":    "Juan Perez",
		"fecha":     "14/10/2025",
		"numero_op": "677524",
		"gastos": []domain.Record{
			{"categoria": "PEAJE", "monto": 12500.5, "pais": "Argentina"},
		},
	}}

	data, filename, err := svc.ExpensesCSV(records, "")
	require.NoError(t, err)
	assert.Regexp(t, `^rendiciones_\d{4}-\d{2}-\d{2}\.csv$`, filename)

	require.True(t, bytes.HasPrefix(data, export.BOM))
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, export.BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Chofer", rows[0][0])
	assert.Equal(t, []string{
		"Juan Perez", "", "", "14/10/2025", "677524", "GASTO", "PEAJE", "12500.50", "Argentina",
	}, rows[1])
}

func TestExportExpensesCSVCustomName(t *testing.T) {
	svc := service.NewExportService(nil)

	_, filename, err := svc.ExpensesCSV(nil, "boletas octubre")
	require.NoError(t, err)
	assert.Regexp(t, `^boletas_octubre_\d{4}-\d{2}-\d{2}\.csv$`, filename)
}
