package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rendix/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// expenseColumns defines the CSV header row for flattened expense rows.
var expenseColumns = []string{
	"Chofer",
	"Chofer Registrado",
	"Identificador",
	"Fecha",
	"Numero OP",
	"Tipo",
	"Categoria",
	"Monto",
	"Pais",
}

// Writer wraps csv.Writer for exporting reconciliation expenses as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(expenseColumns)
}

// WriteReconciliations flattens reconciliation records into one CSV row per
// expense and per diem entry and writes them.
func (w *Writer) WriteReconciliations(records []domain.Record) error {
	for _, rec := range records {
		for _, row := range reconciliationRows(rec) {
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// reconciliationRows flattens one reconciliation record into expense rows.
// Expenses come out first, per diem entries after, both in extraction order.
func reconciliationRows(rec domain.Record) [][]string {
	chofer, _ := rec.String("chofer")
	fecha, _ := rec.String("fecha")
	numeroOp, _ := rec.String("numero_op")

	registered, identifier := "", ""
	if id := rec.Identity(); id != nil {
		registered = id.FullName
		identifier = id.Identifier
	}

	base := []string{chofer, registered, identifier, fecha, numeroOp}

	var rows [][]string
	if gastos, ok := rec.Records("gastos"); ok {
		for _, g := range gastos {
			categoria, _ := g.String("categoria")
			pais, _ := g.String("pais")
			monto, _ := g.Float("monto")
			row := append(append([]string{}, base...), "GASTO", categoria, formatMoney(monto), pais)
			rows = append(rows, row)
		}
	}
	if viaticos, ok := rec.Records("viaticos"); ok {
		for _, v := range viaticos {
			pais, _ := v.String("pais")
			monto, _ := v.Float("monto")
			row := append(append([]string{}, base...), "VIATICO", "", formatMoney(monto), pais)
			rows = append(rows, row)
		}
	}
	return rows
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
