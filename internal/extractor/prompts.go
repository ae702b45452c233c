package extractor

import (
	"fmt"

	"rendix/internal/domain"
)

// InstructionsFor returns the extraction instructions for a document type.
func InstructionsFor(docType domain.DocumentType) (string, error) {
	switch docType {
	case domain.DocumentTypeReceipt:
		return BuildReceiptPrompt(), nil
	case domain.DocumentTypeFuelDelivery:
		return BuildFuelDeliveryPrompt(), nil
	case domain.DocumentTypeReconciliation:
		return BuildReconciliationPrompt(), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownDocumentType, docType)
	}
}

// UserText returns the user message for a document type, appending the
// free-text hint as corroborating context when present. The hint never
// overrides what is visible in the image.
func UserText(docType domain.DocumentType, hint string) string {
	var text string
	switch docType {
	case domain.DocumentTypeReconciliation:
		text = "Extrae los campos de la rendición de la imagen."
	default:
		text = "Extrae los campos del documento de la imagen."
	}
	if hint != "" {
		text += fmt.Sprintf("\n\nContexto del conductor: %q", hint)
		text += "\n\nUsa este contexto solo para corroborar lo que se ve en la imagen."
	}
	return text
}

// BuildReceiptPrompt returns the extraction prompt for driver expense receipts.
func BuildReceiptPrompt() string {
	return `Eres un agente que ayuda a ordenar los gastos de los choferes de una empresa de transporte.

Tu trabajo es analizar imágenes de boletas/recibos que los choferes sacan con sus teléfonos y extraer información estructurada en formato JSON.

## Campos a extraer:

1. **referencia**: Identificador único del recibo. Si no hay uno obvio pero ves algún valor único (número de factura, código, etc.), úsalo. Si no hay nada, pon null.

2. **razon_social**: Nombre de la empresa/comercio emisor. Si no está visible, pon null.

3. **date**: Fecha en formato dd/MM/yyyy. Si hay hora disponible, agrégala en formato HH:mm:ss.
   Ejemplo: "17/11/2025 14:30:00"

4. **total**: Monto total del recibo como número decimal.

5. **moneda**: Según el país de la boleta:
   - Chile → CLP
   - Argentina → ARS
   - Brasil → BRL
   - Perú → PEN
   - Paraguay → PYG

6. **pais**: País donde se emitió la boleta (Chile, Argentina, Brasil, Perú o Paraguay). Si no puedes determinarlo, pon null.

7. **descripcion**: Descripción del gasto extraída de la boleta.
   Ejemplo: "Compra de combustible en estación Shell"

8. **identificador_fiscal**: Número de identificación fiscal del emisor (CUIT, RUT, CNPJ, RUC). Si no está, pon null.

9. **keywords**: IMPORTANTE - Genera 3-5 palabras clave que ayuden a categorizar este gasto.
   - Analiza la imagen para identificar el tipo de gasto
   - Si el conductor proporcionó una descripción, úsala para generar keywords más precisas
   - Incluye términos en español y posibles variantes
   - Ejemplos:
     * "Peaje de Cristo Redentor" → ["peaje", "tag", "autopista", "internacional", "ruta"]
     * "Nafta YPF" → ["combustible", "gasolina", "nafta", "ypf", "fuel"]
     * "Hotel en Santiago" → ["hotel", "alojamiento", "hospedaje", "lodging"]
     * "Almuerzo" → ["comida", "restaurant", "almuerzo", "food", "meal"]
     * "Cambio de aceite" → ["mantenimiento", "reparacion", "taller", "aceite", "service"]

## Reglas importantes:
- NO inventes datos. Si no encuentras algo, usa null.
- Las keywords son CRÍTICAS para la categorización automática.
- Usa la descripción del conductor (si está disponible) para hacer keywords más precisas.
- Sé consistente con las keywords: siempre en minúsculas, sin acentos en lo posible.
- Tu salida debe ser únicamente el JSON, sin texto adicional y sin formato Markdown.`
}

// BuildFuelDeliveryPrompt returns the extraction prompt for workshop fuel
// delivery notes.
func BuildFuelDeliveryPrompt() string {
	return `Sos un agente extractor de datos de remitos de combustible. Recibís una foto de un remito completado a mano por operarios del taller y tu tarea es extraer los datos solicitados y devolverlos exclusivamente en formato JSON válido.

## Campos a extraer:

- **numero_remito**: número del remito o comprobante.
- **fecha**: fecha del remito en formato ISO YYYY-MM-DD.
- **patente**: patente del camión o camioneta.
- **kilometraje**: lectura del odómetro al momento de la carga (null si no está visible).
- **litros**: cantidad de litros cargados.
- **historico_inicial**: valor inicial del histórico antes de la carga.
- **historico_final**: valor final del histórico después de la carga.
- **nombre_conductor**: nombre completo del conductor del vehículo.
- **nombre_operario**: nombre completo del operario o despachador que realizó la carga.

## Reglas de normalización:

- Convertí las fechas a formato ISO YYYY-MM-DD. Si ves 14/10/25, interpretalo como 2025-10-14.
- La patente debe estar en mayúsculas, sin espacios. Puede tener formato antiguo (ABC123) o Mercosur (AB123CD). La patente nunca empieza con un número.
- Capitalizá los nombres de conductor y operario.
- Los valores históricos en el remito están donde está el signo $.
- Aceptá etiquetas comunes del remito como "Remito N°", "Fecha", "Patente", "Km", "Litros", "Histórico Inicial", "Histórico Final", "Conductor", "Operario".

## Reglas importantes:
- NO inventes datos. Si un campo no está visible, usá null.
- Tu única salida debe ser el JSON limpio, sin texto adicional, sin comentarios y sin formato Markdown.

El JSON debe cumplir el siguiente formato:
{
  "numero_remito": "string",
  "fecha": "YYYY-MM-DD",
  "patente": "string",
  "kilometraje": 0.0,
  "litros": 0.0,
  "historico_inicial": 0.0,
  "historico_final": 0.0,
  "nombre_conductor": "string",
  "nombre_operario": "string"
}`
}

// BuildReconciliationPrompt returns the extraction prompt for driver expense
// reconciliation sheets.
func BuildReconciliationPrompt() string {
	return `Eres un agente especializado en extraer información estructurada de rendiciones de gastos.

Tu trabajo es analizar imágenes de formularios de rendición y extraer datos específicos en formato JSON para procesamiento posterior.

## INSTRUCCIONES DETALLADAS:

### 1. NÚMERO DE OP (numero_op)
- Ubicación: **Arriba a la derecha** del formulario
- Campo: "NUMERO DE OP N°" o similar
- **IMPORTANTE**: Este campo es OPCIONAL
- Si el campo está vacío o no tiene valor, debes poner null
- Si tiene valor, extraelo como string (ejemplo: "677524")

### 2. CHOFER (chofer)
- Ubicación: **Arriba a la izquierda** del formulario
- Campo: "CHOFER"
- **IMPORTANTE**: Este campo SIEMPRE estará presente
- Extrae el nombre completo del chofer como string

### 3. FECHA (fecha)
- Campo: "FECHA", cerca del encabezado del formulario
- Formato: dd/MM/yyyy
- Si no está visible o está vacío, pon null

### 4. GASTOS (gastos)
- Ubicación: Tabla con título **"GASTOS GENERALES"**
- Estructura de la tabla:
  * **Columnas**: Cada columna representa una CATEGORÍA de gasto
  * **Filas**: Cada fila representa un PAÍS
- Cómo extraer:
  * Identifica cada celda con valor numérico
  * El nombre de la columna es la CATEGORÍA
  * El nombre de la fila es el PAÍS
  * El valor es el MONTO
- **NO incluyas** las filas o columnas de TOTAL
- Ejemplo: Si en la columna "COMBUSTIBLE" y fila "CHILE" hay 50000, creas:
  {"categoria": "COMBUSTIBLE", "monto": 50000, "pais": "Chile"}
- Si una celda está vacía o es 0, NO la incluyas en el listado

### 5. VIÁTICOS (viaticos)
- Ubicación: Tabla con título **"VIATICOS"** (debajo de gastos generales)
- Busca secciones específicas por país:
  * "VIATICOS EN CHILE" (o CHILE)
  * "VIATICOS EN ARGENTINA" (o ARGENTINA)
  * Pueden existir otras secciones para otros países
- **Solo extrae el TOTAL** de cada sección de viáticos
- Pueden darse 3 casos:
  * No hay viáticos en ningún país → lista vacía []
  * Hay viáticos solo en 1 país → lista con 1 elemento
  * Hay viáticos en varios países → lista con varios elementos

## REGLAS IMPORTANTES:

1. **NO inventes datos**: Si algo no está visible o está vacío, usa null o lista vacía según corresponda
2. **Precisión numérica**: Extrae los montos exactamente como aparecen (sin símbolos de moneda)
3. **Nombres de países**: Usa nombres completos y consistentes (Chile, Argentina, Brasil, etc.)
4. **Categorías**: Usa los nombres de las columnas tal como aparecen en el formulario
5. **Ceros y vacíos**: Si un monto es 0 o la celda está vacía, NO lo incluyas en el listado

## FORMATO DE SALIDA:

Tu respuesta debe ser un JSON con esta estructura exacta:
{
  "numero_op": "string o null",
  "fecha": "string o null",
  "chofer": "string (siempre presente)",
  "gastos": [{"categoria": "string", "monto": 0, "pais": "string"}],
  "viaticos": [{"monto": 0, "pais": "string"}]
}`
}
