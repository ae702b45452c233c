package resolver

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"rendix/internal/normalize"
)

// tokenSort folds a name to lowercase unaccented form and sorts its tokens,
// so "Pérez Juan" and "juan perez" compare equal.
func tokenSort(name string) string {
	tokens := strings.Fields(normalize.Fold(name))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Similarity scores how close an extracted name is to a registered name,
// ignoring case, accents and token order. Returns a value in [0, 1].
func Similarity(extracted, registered string) float64 {
	a := tokenSort(extracted)
	b := tokenSort(registered)
	if a == "" || b == "" {
		return 0
	}
	return levenshtein.Similarity(a, b, nil)
}
