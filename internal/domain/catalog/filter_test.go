// internal/domain/catalog/filter_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOf(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
		want     []string
	}{
		{
			name:     "empty collection yields only All",
			products: nil,
			want:     []string{"All"},
		},
		{
			name: "missing category becomes General, duplicates collapse",
			products: []Product{
				{Category: "Snacks"},
				{},
				{Category: "Snacks"},
			},
			want: []string{"All", "General", "Snacks"},
		},
		{
			name: "categories are sorted",
			products: []Product{
				{Category: "Drinks"},
				{Category: "Bakery"},
				{Category: "Cleaning"},
			},
			want: []string{"All", "Bakery", "Cleaning", "Drinks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoriesOf(tt.products))
		})
	}
}

func TestCategoriesOfDeterministic(t *testing.T) {
	products := []Product{
		{Category: "Snacks"}, {Category: "Drinks"}, {}, {Category: "Bakery"},
	}
	first := CategoriesOf(products)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CategoriesOf(products))
	}
}

func TestFilter(t *testing.T) {
	products := []Product{
		{Name: "Potato Chips", Brand: "Crispy Co", Category: "Snacks"},
		{Name: "Tortilla CHIPS", Brand: "El Maiz", Category: "Snacks"},
		{Name: "Orange Juice", Brand: "Fresh Farms", Category: "Beverages"},
		{Name: "Paper Towels", Brand: "HomeSoft"}, // effective category General
		{Name: "Soda", Brand: "ChipMunk Drinks", Category: "Beverages"},
	}

	tests := []struct {
		name      string
		search    string
		category  string
		wantNames []string
	}{
		{
			name:      "no predicates passes everything",
			search:    "",
			category:  "All",
			wantNames: []string{"Potato Chips", "Tortilla CHIPS", "Orange Juice", "Paper Towels", "Soda"},
		},
		{
			name:      "search is case-insensitive substring over name and brand",
			search:    "chip",
			category:  "All",
			wantNames: []string{"Potato Chips", "Tortilla CHIPS", "Soda"},
		},
		{
			name:      "category narrows independently of search",
			search:    "",
			category:  "Beverages",
			wantNames: []string{"Orange Juice", "Soda"},
		},
		{
			name:      "both predicates are ANDed",
			search:    "chip",
			category:  "Snacks",
			wantNames: []string{"Potato Chips", "Tortilla CHIPS"},
		},
		{
			name:      "General matches products without a category",
			search:    "",
			category:  "General",
			wantNames: []string{"Paper Towels"},
		},
		{
			name:      "no match yields empty, not nil panic",
			search:    "zzz",
			category:  "All",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(products, tt.search, tt.category)
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := []Product{
		{Name: "Potato Chips", Category: "Snacks"},
		{Name: "Orange Juice", Category: "Beverages"},
	}
	_ = Filter(products, "chips", "Snacks")

	assert.Equal(t, "Potato Chips", products[0].Name)
	assert.Equal(t, "Orange Juice", products[1].Name)
}

func TestEffectiveCategory(t *testing.T) {
	p := Product{}
	assert.Equal(t, "General", p.EffectiveCategory())

	p.Category = "Snacks"
	assert.Equal(t, "Snacks", p.EffectiveCategory())
}
