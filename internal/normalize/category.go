package normalize

import (
	"strings"

	"rendix/internal/domain"
)

// Category maps a free-text expense label onto the closed taxonomy. The
// mapping is total: known labels, misspellings and synonyms land on their
// member, anything else lands on the fallback, never outside the set.
func Category(label string) domain.ExpenseCategory {
	folded := Fold(label)
	if folded == "" {
		return domain.CategoryFallback
	}

	if cat, ok := domain.CategorySynonyms[folded]; ok {
		return cat
	}

	// match declared members by folded name, tolerating space/underscore swaps
	underscored := strings.ReplaceAll(folded, " ", "_")
	for _, name := range domain.ExpenseCategoryStrings() {
		member := Fold(name)
		if folded == member || underscored == member {
			return domain.ExpenseCategory(name)
		}
	}
	return domain.CategoryFallback
}
