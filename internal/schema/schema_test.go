package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rendix/internal/domain"
)

func TestForDocumentType(t *testing.T) {
	tests := []struct {
		docType domain.DocumentType
		name    string
	}{
		{docType: domain.DocumentTypeReceipt, name: "recibo"},
		{docType: domain.DocumentTypeFuelDelivery, name: "remito_combustible"},
		{docType: domain.DocumentTypeReconciliation, name: "rendicion"},
	}
	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			s, err := ForDocumentType(tt.docType)
			require.NoError(t, err)
			assert.Equal(t, tt.docType, s.DocumentType)
			assert.Equal(t, tt.name, s.Name)
			assert.NoError(t, s.Validate())
		})
	}

	_, err := ForDocumentType("factura")
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}

func TestRecordSchemaAccessors(t *testing.T) {
	s, err := ForDocumentType(domain.DocumentTypeReceipt)
	require.NoError(t, err)

	f, ok := s.Field("total")
	require.True(t, ok)
	assert.Equal(t, FieldNumber, f.Type)
	assert.True(t, f.Required)

	_, ok = s.Field("inexistente")
	assert.False(t, ok)

	assert.Equal(t,
		[]string{"referencia", "razon_social", "date", "total", "moneda", "pais", "descripcion", "identificador_fiscal", "keywords"},
		s.FieldNames())
	assert.Equal(t, []string{"date", "total", "keywords"}, s.RequiredFields())
}

func TestRecordSchemaValidate(t *testing.T) {
	valid := func() RecordSchema {
		return RecordSchema{
			DocumentType: domain.DocumentTypeReceipt,
			Name:         "recibo",
			Fields:       []FieldSpec{{Name: "total", Type: FieldNumber, Required: true}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*RecordSchema)
		wantErr error
	}{
		{name: "valid", mutate: func(*RecordSchema) {}},
		{name: "unknown document type", mutate: func(s *RecordSchema) { s.DocumentType = "factura" }, wantErr: domain.ErrUnknownDocumentType},
		{name: "missing name", mutate: func(s *RecordSchema) { s.Name = "" }, wantErr: domain.ErrMalformedSchema},
		{name: "no fields", mutate: func(s *RecordSchema) { s.Fields = nil }, wantErr: domain.ErrMalformedSchema},
		{name: "unnamed field", mutate: func(s *RecordSchema) { s.Fields[0].Name = "" }, wantErr: domain.ErrMalformedSchema},
		{name: "duplicate field", mutate: func(s *RecordSchema) {
			s.Fields = append(s.Fields, FieldSpec{Name: "total", Type: FieldNumber})
		}, wantErr: domain.ErrMalformedSchema},
		{name: "unknown field type", mutate: func(s *RecordSchema) { s.Fields[0].Type = "decimal" }, wantErr: domain.ErrMalformedSchema},
		{name: "enum without values", mutate: func(s *RecordSchema) {
			s.Fields[0] = FieldSpec{Name: "moneda", Type: FieldEnum}
		}, wantErr: domain.ErrMalformedSchema},
		{name: "fallback outside enum", mutate: func(s *RecordSchema) {
			s.Fields[0] = FieldSpec{Name: "moneda", Type: FieldEnum, Enum: []string{"CLP"}, Fallback: "USD"}
		}, wantErr: domain.ErrMalformedSchema},
		{name: "list without element fields", mutate: func(s *RecordSchema) {
			s.Fields[0] = FieldSpec{Name: "gastos", Type: FieldList}
		}, wantErr: domain.ErrMalformedSchema},
		{name: "invalid element field", mutate: func(s *RecordSchema) {
			s.Fields[0] = FieldSpec{Name: "gastos", Type: FieldList, Fields: []FieldSpec{{Name: "", Type: FieldNumber}}}
		}, wantErr: domain.ErrMalformedSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJSONSchema(t *testing.T) {
	s := RecordSchema{
		DocumentType: domain.DocumentTypeReceipt,
		Name:         "recibo",
		Fields: []FieldSpec{
			{Name: "date", Type: FieldDate, Required: true, Description: "fecha"},
			{Name: "pais", Type: FieldString},
			{Name: "total", Type: FieldNumber, Required: true},
			{Name: "moneda", Type: FieldEnum, Enum: []string{"CLP", "ARS"}},
			{Name: "keywords", Type: FieldStringList, Required: true},
			{Name: "gastos", Type: FieldList, Fields: []FieldSpec{{Name: "monto", Type: FieldNumber, Required: true}}},
		},
	}

	js := s.JSONSchema()

	assert.Equal(t, "object", js["type"])
	assert.Equal(t, false, js["additionalProperties"])
	assert.ElementsMatch(t, []string{"date", "total", "keywords"}, js["required"])

	props, ok := js["properties"].(map[string]any)
	require.True(t, ok)

	date := props["date"].(map[string]any)
	assert.Equal(t, "string", date["type"])
	assert.Equal(t, "fecha", date["description"])

	pais := props["pais"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, pais["type"])

	moneda := props["moneda"].(map[string]any)
	anyOf, ok := moneda["anyOf"].([]any)
	require.True(t, ok)
	require.Len(t, anyOf, 2)
	assert.Equal(t, []string{"CLP", "ARS"}, anyOf[0].(map[string]any)["enum"])

	keywords := props["keywords"].(map[string]any)
	assert.Equal(t, "array", keywords["type"])

	gastos := props["gastos"].(map[string]any)
	items, ok := gastos["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", items["type"])
	assert.Equal(t, []string{"monto"}, items["required"])
}
