// internal/domain/catalog/filter.go
package catalog

import (
	"sort"
	"strings"
)

// CategoriesOf derives the category picker sequence from a product list:
// "All" first, then the distinct effective categories sorted by name.
// Deterministic for a given input.
func CategoriesOf(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	for i := range products {
		seen[products[i].EffectiveCategory()] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return append([]string{CategoryAll}, categories...)
}

// Filter returns the products passing both the category and the search
// predicate. The two axes are independent: category "All" passes every
// product, an empty search passes every product, and search matches a
// case-insensitive substring of the name or the brand.
func Filter(products []Product, searchText, selectedCategory string) []Product {
	search := strings.ToLower(strings.TrimSpace(searchText))

	filtered := make([]Product, 0, len(products))
	for i := range products {
		p := products[i]

		if selectedCategory != CategoryAll && p.EffectiveCategory() != selectedCategory {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered
}
