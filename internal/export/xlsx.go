package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"rendix/internal/domain"
)

// fuelHeaders lists the workbook columns for fuel delivery notes.
var fuelHeaders = []string{
	"Numero Remito",
	"Fecha",
	"Patente",
	"Kilometraje",
	"Litros",
	"Historico Inicial",
	"Historico Final",
	"Conductor",
	"Operario",
}

// FuelDeliveriesXLSX builds an XLSX workbook with one row per fuel delivery
// record and returns it as bytes.
func FuelDeliveriesXLSX(records []domain.Record) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Remitos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, h := range fuelHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	row := 2
	for _, rec := range records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		writeString := func(col int, key string) {
			if s, ok := rec.String(key); ok {
				write(col, s)
			}
		}
		writeNumber := func(col int, key string) {
			if n, ok := rec.Float(key); ok {
				write(col, n)
			}
		}

		writeString(1, "numero_remito")
		writeString(2, "fecha")
		writeString(3, "patente")
		writeNumber(4, "kilometraje")
		writeNumber(5, "litros")
		writeNumber(6, "historico_inicial")
		writeNumber(7, "historico_final")
		writeString(8, "nombre_conductor")
		writeString(9, "nombre_operario")

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "G", 16)
	_ = f.SetColWidth(sheet, "H", "I", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
