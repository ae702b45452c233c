package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendix/internal/domain"
	"rendix/internal/schema"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	var schemas []schema.RecordSchema
	for _, dt := range []domain.DocumentType{
		domain.DocumentTypeReceipt,
		domain.DocumentTypeFuelDelivery,
		domain.DocumentTypeReconciliation,
	} {
		s, err := schema.ForDocumentType(dt)
		require.NoError(t, err)
		schemas = append(schemas, s)
	}
	e, err := NewEngine(schemas...)
	require.NoError(t, err)
	return e
}

func validReceipt() domain.Record {
	return domain.Record{
		"referencia":           "B-00123",
		"razon_social":         "Copec S.A.",
		"date":                 "14/10/2025",
		"total":                15990.0,
		"moneda":               "CLP",
		"pais":                 "Chile",
		"descripcion":          "Carga de combustible",
		"identificador_fiscal": nil,
		"keywords":             []string{"combustible", "nafta"},
	}
}

func TestNewEngineRejectsMalformedSchema(t *testing.T) {
	_, err := NewEngine(schema.RecordSchema{DocumentType: domain.DocumentTypeReceipt, Name: ""})
	assert.ErrorIs(t, err, domain.ErrMalformedSchema)
}

func TestValidateRecordUnknownType(t *testing.T) {
	e := newEngine(t)
	err := e.ValidateRecord("factura", domain.Record{})
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}

func TestValidateRecordPasses(t *testing.T) {
	e := newEngine(t)
	assert.NoError(t, e.ValidateRecord(domain.DocumentTypeReceipt, validReceipt()))
}

func TestValidateRecordRequiredNull(t *testing.T) {
	e := newEngine(t)
	rec := validReceipt()
	rec["total"] = nil

	err := e.ValidateRecord(domain.DocumentTypeReceipt, rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecordInvalid)

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Failures, 1)
	assert.Equal(t, "total", vErr.Failures[0].FieldPath)
	assert.Contains(t, vErr.Error(), "required field total is null")
}

func TestValidateRecordTypeMismatch(t *testing.T) {
	e := newEngine(t)
	rec := validReceipt()
	rec["total"] = "15990"

	err := e.ValidateRecord(domain.DocumentTypeReceipt, rec)
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Failures, 1)
	assert.Equal(t, "total", vErr.Failures[0].FieldPath)
	assert.Equal(t, "number", vErr.Failures[0].ExpectedValue)
}

func TestValidateRecordEnumOutsideSet(t *testing.T) {
	e := newEngine(t)
	rec := validReceipt()
	rec["moneda"] = "USD"

	err := e.ValidateRecord(domain.DocumentTypeReceipt, rec)
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Failures, 1)
	assert.Equal(t, "moneda", vErr.Failures[0].FieldPath)
	assert.Contains(t, vErr.Failures[0].Message, `"USD"`)
}

func TestValidateRecordEmptyKeywords(t *testing.T) {
	e := newEngine(t)
	rec := validReceipt()
	rec["keywords"] = []string{}

	err := e.ValidateRecord(domain.DocumentTypeReceipt, rec)
	assert.ErrorIs(t, err, domain.ErrRecordInvalid)
}

func TestValidateRecordNestedEntries(t *testing.T) {
	e := newEngine(t)
	rec := domain.Record{
		"numero_op": nil,
		"fecha":     "14/10/2025",
		"chofer":    "Juan Perez",
		"gastos": []domain.Record{
			{"categoria": "COMBUSTIBLE", "monto": 50000.0, "pais": "Chile"},
			{"categoria": "PEAJE", "monto": nil, "pais": "Chile"},
		},
		"viaticos": []domain.Record{},
	}

	err := e.ValidateRecord(domain.DocumentTypeReconciliation, rec)
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Failures, 1)
	assert.Equal(t, "gastos[1].monto", vErr.Failures[0].FieldPath)

	rec["gastos"] = []domain.Record{{"categoria": "COMBUSTIBLE", "monto": 50000.0, "pais": "Chile"}}
	assert.NoError(t, e.ValidateRecord(domain.DocumentTypeReconciliation, rec))
}

func TestValidateRecordUndeclaredKey(t *testing.T) {
	e := newEngine(t)
	rec := validReceipt()
	rec["propina"] = 1000.0

	err := e.ValidateRecord(domain.DocumentTypeReceipt, rec)
	require.Error(t, err)
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Failures, 1)
	assert.Contains(t, vErr.Failures[0].Message, "shape contract violation")
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Schema: "recibo", Failures: []Result{
		failure("total", "non-null number", "null", "required field total is null"),
		failure("moneda", "one of CLP, ARS", "USD", `field moneda holds "USD", outside its declared value set`),
	}}
	assert.Equal(t,
		`record does not conform to schema "recibo": required field total is null; field moneda holds "USD", outside its declared value set`,
		err.Error())
	assert.ErrorIs(t, err, domain.ErrRecordInvalid)
}
