package domain

// ExpenseCategory is one member of the closed expense taxonomy used by
// reconciliation-sheet line items. Labels read from forms are mapped onto
// this set; anything unrecognized becomes CategoryOtros.
type ExpenseCategory string

const (
	CategoryCombustible     ExpenseCategory = "COMBUSTIBLE"
	CategoryPeaje           ExpenseCategory = "PEAJE"
	CategoryGomeria         ExpenseCategory = "GOMERIA"
	CategoryEstacionamiento ExpenseCategory = "ESTACIONAMIENTO"
	CategoryLavado          ExpenseCategory = "LAVADO"
	CategoryRepuestos       ExpenseCategory = "REPUESTOS"
	CategoryComida          ExpenseCategory = "COMIDA"
	CategoryAlojamiento     ExpenseCategory = "ALOJAMIENTO"
	CategoryTelefono        ExpenseCategory = "TELEFONO"
	CategoryAduana          ExpenseCategory = "ADUANA"
	CategoryCargaDescarga   ExpenseCategory = "CARGA_DESCARGA"
	CategoryOtros           ExpenseCategory = "OTROS"
)

// CategoryFallback is the catch-all member for unmapped labels.
const CategoryFallback = CategoryOtros

var allExpenseCategories = []ExpenseCategory{
	CategoryCombustible,
	CategoryPeaje,
	CategoryGomeria,
	CategoryEstacionamiento,
	CategoryLavado,
	CategoryRepuestos,
	CategoryComida,
	CategoryAlojamiento,
	CategoryTelefono,
	CategoryAduana,
	CategoryCargaDescarga,
	CategoryOtros,
}

// ExpenseCategoryStrings returns the taxonomy as plain strings, in declared
// order, for schema enum constraints and prompt text.
func ExpenseCategoryStrings() []string {
	result := make([]string, len(allExpenseCategories))
	for i, cat := range allExpenseCategories {
		result[i] = string(cat)
	}
	return result
}

// CategorySynonyms maps folded (lowercase, accent-stripped) form labels and
// common misspellings to taxonomy members. Keys must already be folded.
var CategorySynonyms = map[string]ExpenseCategory{
	"combustible":      CategoryCombustible,
	"combustibles":     CategoryCombustible,
	"diesel":           CategoryCombustible,
	"gasolina":         CategoryCombustible,
	"nafta":            CategoryCombustible,
	"peaje":            CategoryPeaje,
	"peajes":           CategoryPeaje,
	"tag":              CategoryPeaje,
	"autopista":        CategoryPeaje,
	"gomeria":          CategoryGomeria,
	"gomerias":         CategoryGomeria,
	"cubiertas":        CategoryGomeria,
	"neumaticos":       CategoryGomeria,
	"estacionamiento":  CategoryEstacionamiento,
	"parking":          CategoryEstacionamiento,
	"lavado":           CategoryLavado,
	"lavadero":         CategoryLavado,
	"repuesto":         CategoryRepuestos,
	"repuestos":        CategoryRepuestos,
	"taller":           CategoryRepuestos,
	"mecanico":         CategoryRepuestos,
	"reparacion":       CategoryRepuestos,
	"comida":           CategoryComida,
	"comidas":          CategoryComida,
	"almuerzo":         CategoryComida,
	"restaurant":       CategoryComida,
	"viandas":          CategoryComida,
	"alojamiento":      CategoryAlojamiento,
	"hotel":            CategoryAlojamiento,
	"hospedaje":        CategoryAlojamiento,
	"telefono":         CategoryTelefono,
	"celular":          CategoryTelefono,
	"recarga":          CategoryTelefono,
	"aduana":           CategoryAduana,
	"despacho":         CategoryAduana,
	"carga":            CategoryCargaDescarga,
	"descarga":         CategoryCargaDescarga,
	"carga y descarga": CategoryCargaDescarga,
	"estiba":           CategoryCargaDescarga,
	"otros":            CategoryOtros,
	"otro":             CategoryOtros,
	"varios":           CategoryOtros,
}
