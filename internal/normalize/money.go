package normalize

import (
	"strconv"
	"strings"

	"rendix/internal/domain"
)

// currencyByCountry is the fixed jurisdiction table. There is deliberately no
// fallback beyond these five: an unrecognized country yields no currency.
var currencyByCountry = map[string]string{
	"chile":     "CLP",
	"argentina": "ARS",
	"brasil":    "BRL",
	"peru":      "PEN",
	"paraguay":  "PYG",
}

// CurrencyForCountry maps a country name to its currency code. Lookup is
// accent- and case-insensitive; ok is false for anything outside the table.
func CurrencyForCountry(country string) (string, bool) {
	code, ok := currencyByCountry[Fold(country)]
	return code, ok
}

// InferCurrency fills rec[currencyKey] from rec[countryKey] via the fixed
// country table when the document stated no currency explicitly. Records with
// an unrecognized or absent country keep a null currency.
func InferCurrency(rec domain.Record, countryKey, currencyKey string) {
	if rec[currencyKey] != nil {
		return
	}
	country, ok := rec.String(countryKey)
	if !ok {
		return
	}
	if code, ok := CurrencyForCountry(country); ok {
		rec[currencyKey] = code
	}
}

// Amount coerces a raw value into a float64 amount. Strings accept the
// regional conventions: "15.990" is fifteen thousand nine hundred ninety,
// "1.234,56" uses a comma decimal mark, and currency symbols are ignored.
func Amount(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		return parseAmount(n)
	}
	return 0, false
}

func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$ ")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		// the rightmost separator is the decimal mark
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dot >= 0:
		// a single dot followed by exactly three digits is a thousands
		// separator in this region, not a decimal mark
		if strings.Count(s, ".") > 1 || len(s)-dot-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
