package schema

import (
	"fmt"

	"rendix/internal/domain"
)

// ForDocumentType returns the record schema for dt. Requesting an unknown
// type is a deployment defect and fails immediately.
func ForDocumentType(dt domain.DocumentType) (RecordSchema, error) {
	switch dt {
	case domain.DocumentTypeReceipt:
		return receiptSchema, nil
	case domain.DocumentTypeFuelDelivery:
		return fuelDeliverySchema, nil
	case domain.DocumentTypeReconciliation:
		return reconciliationSchema, nil
	default:
		return RecordSchema{}, fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, dt)
	}
}

var receiptSchema = RecordSchema{
	DocumentType: domain.DocumentTypeReceipt,
	Name:         "recibo",
	Fields: []FieldSpec{
		{
			Name:        "referencia",
			Type:        FieldString,
			Description: "Identificador único del recibo si está disponible (número de factura, folio, código)",
		},
		{
			Name:        "razon_social",
			Type:        FieldString,
			Description: "Razón social del emisor si está disponible",
		},
		{
			Name:        "date",
			Type:        FieldDate,
			Required:    true,
			Description: "Fecha del recibo en formato dd/MM/yyyy y, si está disponible, hora en formato HH:mm:ss",
		},
		{
			Name:        "total",
			Type:        FieldNumber,
			Required:    true,
			Description: "Monto total del recibo como número decimal",
		},
		{
			Name:        "moneda",
			Type:        FieldEnum,
			Enum:        []string{"CLP", "ARS", "BRL", "PEN", "PYG"},
			Description: "Moneda según el país de la boleta: CLP para Chile, ARS para Argentina, BRL para Brasil, PEN para Perú y PYG para Paraguay",
		},
		{
			Name:        "pais",
			Type:        FieldString,
			Description: "País de emisión de la boleta si es reconocible. Ejemplos: Chile, Argentina, Brasil, Perú, Paraguay",
		},
		{
			Name:        "descripcion",
			Type:        FieldString,
			Description: "Descripción del gasto extraída de la boleta. Ejemplo: 'Compra de combustible en estación Shell'",
		},
		{
			Name:        "identificador_fiscal",
			Type:        FieldString,
			Description: "Número de identificación fiscal del emisor (CUIT argentino, RUT chileno, CNPJ brasileño, RUC peruano o paraguayo)",
		},
		{
			Name:        "keywords",
			Type:        FieldStringList,
			Required:    true,
			Description: "Lista de 3 a 5 palabras clave en minúsculas que identifican el tipo de gasto, en español y variantes en inglés si son relevantes",
		},
	},
}

var fuelDeliverySchema = RecordSchema{
	DocumentType: domain.DocumentTypeFuelDelivery,
	Name:         "remito_combustible",
	Fields: []FieldSpec{
		{
			Name:        "numero_remito",
			Type:        FieldString,
			Required:    true,
			Description: "Número del remito o comprobante de carga",
		},
		{
			Name:        "fecha",
			Type:        FieldDate,
			Required:    true,
			Description: "Fecha de emisión del remito en formato dd/MM/yyyy",
		},
		{
			Name:        "patente",
			Type:        FieldString,
			Required:    true,
			Transform:   TransformPlate,
			Description: "Patente del camión o camioneta que recibe el combustible, en mayúsculas y sin espacios; formato antiguo (ABC123) o Mercosur (AB123CD), nunca comienza con un número",
		},
		{
			Name:        "kilometraje",
			Type:        FieldNumber,
			Description: "Kilometraje registrado al momento de la carga; puede omitirse",
		},
		{
			Name:        "litros",
			Type:        FieldNumber,
			Required:    true,
			Description: "Cantidad de litros cargados según el remito",
		},
		{
			Name:        "historico_inicial",
			Type:        FieldNumber,
			Required:    true,
			Description: "Valor inicial del histórico de combustible antes de la carga; los valores históricos figuran junto al signo $",
		},
		{
			Name:        "historico_final",
			Type:        FieldNumber,
			Required:    true,
			Description: "Valor final del histórico de combustible después de la carga",
		},
		{
			Name:        "nombre_conductor",
			Type:        FieldString,
			Required:    true,
			Transform:   TransformPersonName,
			Description: "Nombre completo del conductor del vehículo, capitalizado",
		},
		{
			Name:        "nombre_operario",
			Type:        FieldString,
			Required:    true,
			Transform:   TransformPersonName,
			Description: "Nombre completo del operario o despachador que realizó la carga, capitalizado",
		},
	},
}

var reconciliationSchema = RecordSchema{
	DocumentType: domain.DocumentTypeReconciliation,
	Name:         "rendicion",
	Fields: []FieldSpec{
		{
			Name:        "numero_op",
			Type:        FieldString,
			Description: "Número de operación de la rendición, ubicado arriba a la derecha; puede estar vacío (null)",
		},
		{
			Name:        "fecha",
			Type:        FieldDate,
			DefaultNow:  true,
			Description: "Fecha de la rendición en formato dd/MM/yyyy si figura en el formulario; null si no está",
		},
		{
			Name:        "chofer",
			Type:        FieldString,
			Required:    true,
			Transform:   TransformPersonName,
			Description: "Nombre del chofer que realizó la rendición, ubicado arriba a la izquierda; siempre presente",
		},
		{
			Name:        "gastos",
			Type:        FieldList,
			Required:    true,
			Description: "Listado de gastos extraídos de la tabla GASTOS GENERALES; una entrada por celda con monto distinto de cero",
			Fields: []FieldSpec{
				{
					Name:        "categoria",
					Type:        FieldEnum,
					Required:    true,
					Enum:        domain.ExpenseCategoryStrings(),
					Fallback:    string(domain.CategoryFallback),
					Description: "Categoría del gasto, tomada de la columna de la tabla",
				},
				{
					Name:        "monto",
					Type:        FieldNumber,
					Required:    true,
					Description: "Monto del gasto",
				},
				{
					Name:        "pais",
					Type:        FieldString,
					Required:    true,
					Description: "País del gasto. Ejemplos: Chile, Argentina, Brasil, Perú, Paraguay",
				},
			},
		},
		{
			Name:        "viaticos",
			Type:        FieldList,
			Required:    true,
			Description: "Listado de viáticos extraídos de la tabla VIATICOS; una entrada por fila con total distinto de cero",
			Fields: []FieldSpec{
				{
					Name:        "monto",
					Type:        FieldNumber,
					Required:    true,
					Description: "Monto del viático",
				},
				{
					Name:        "pais",
					Type:        FieldString,
					Required:    true,
					Description: "País del viático. Ejemplos: Chile, Argentina, Brasil, Perú, Paraguay",
				},
			},
		},
	},
}
