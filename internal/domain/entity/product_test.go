package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoProducts is an active product worth 10 with 2 in stock, and a sold-out one worth 5.
func twoProducts() Products {
	return Products{
		{
			ID:          "p1",
			Name:        "Vestido Floral",
			Description: "Algodão leve para o verão",
			Price:       10,
			Stock:       2,
			Categories:  []string{"Vestidos", "Verão"},
			Status:      ProductStatusActive,
		},
		{
			ID:          "p2",
			Name:        "Camiseta Básica",
			Description: "Malha penteada com gola redonda",
			Price:       5,
			Stock:       0,
			Categories:  []string{"Camisetas"},
			Status:      ProductStatusOutOfStock,
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func ids(ps Products) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}

	return out
}

func TestProducts_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filters  ProductFilters
		expected []string
	}{
		{name: "no filters keeps everything", filters: ProductFilters{}, expected: []string{"p1", "p2"}},
		{name: "min price is inclusive", filters: ProductFilters{MinPrice: ptr(10.0)}, expected: []string{"p1"}},
		{name: "max price is inclusive", filters: ProductFilters{MaxPrice: ptr(5.0)}, expected: []string{"p2"}},
		{name: "price range covering both bounds", filters: ProductFilters{MinPrice: ptr(5.0), MaxPrice: ptr(10.0)}, expected: []string{"p1", "p2"}},
		{name: "empty price range", filters: ProductFilters{MinPrice: ptr(6.0), MaxPrice: ptr(9.99)}, expected: []string{}},
		{name: "search matches name ignoring case", filters: ProductFilters{Search: "VESTIDO"}, expected: []string{"p1"}},
		{name: "search matches description ignoring case", filters: ProductFilters{Search: "Gola Redonda"}, expected: []string{"p2"}},
		{name: "search is trimmed", filters: ProductFilters{Search: "  malha  "}, expected: []string{"p2"}},
		{name: "search without match", filters: ProductFilters{Search: "sapato"}, expected: []string{}},
		{name: "category matches any listed category", filters: ProductFilters{Category: "Verão"}, expected: []string{"p1"}},
		{name: "category is exact", filters: ProductFilters{Category: "vestidos"}, expected: []string{}},
		{name: "status", filters: ProductFilters{Status: ProductStatusOutOfStock}, expected: []string{"p2"}},
		{name: "in stock drops zero stock", filters: ProductFilters{InStock: true}, expected: []string{"p1"}},
		{
			name:     "filters combine",
			filters:  ProductFilters{Category: "Vestidos", Status: ProductStatusActive, MaxPrice: ptr(10.0), InStock: true, Search: "algodão"},
			expected: []string{"p1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ids(twoProducts().Filter(tt.filters)))
		})
	}
}

func TestProducts_ByCategoryAndActive(t *testing.T) {
	t.Parallel()

	ps := twoProducts()

	assert.Equal(t, []string{"p1"}, ids(ps.ByCategory("Vestidos")))
	assert.Equal(t, []string{"p2"}, ids(ps.ByCategory("Camisetas")))
	assert.Empty(t, ps.ByCategory("Acessórios"))
	assert.Equal(t, []string{"p1"}, ids(ps.Active()))
}

func TestProducts_LowStock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		threshold int
		expected  []string
	}{
		{name: "default threshold catches both", threshold: DefaultLowStockThreshold, expected: []string{"p1", "p2"}},
		{name: "threshold is inclusive", threshold: 2, expected: []string{"p1", "p2"}},
		{name: "zero threshold keeps sold out", threshold: 0, expected: []string{"p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ids(twoProducts().LowStock(tt.threshold)))
		})
	}
}

func TestProducts_CountByStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusCount{Active: 1, OutOfStock: 1, Total: 2}, twoProducts().CountByStatus())
	assert.Equal(t, StatusCount{}, Products{}.CountByStatus())
}

func TestProducts_Stats(t *testing.T) {
	t.Parallel()

	stats := twoProducts().Stats(5)

	assert.Equal(t, 1, stats.Counts.Active)
	assert.Equal(t, 2, stats.Counts.Total)
	assert.True(t, decimal.NewFromInt(20).Equal(stats.TotalStockValue), "got %s", stats.TotalStockValue)
	assert.Equal(t, 2, stats.LowStock)
	assert.Equal(t, 5, stats.LowStockLimit)
}

func TestProducts_TotalStockValueKeepsCents(t *testing.T) {
	t.Parallel()

	ps := Products{{Price: 0.1, Stock: 3}, {Price: 19.99, Stock: 1}}

	assert.Equal(t, "20.29", ps.TotalStockValue().StringFixed(2))
}

func TestProduct_CloneIsDeep(t *testing.T) {
	t.Parallel()

	original := twoProducts()[0]
	original.MainImage = &ProductImage{URL: "https://cdn/a.jpg"}

	clone := original.Clone()
	clone.Categories[0] = "Saias"
	clone.MainImage.URL = "https://cdn/b.jpg"

	require.NotSame(t, original, clone)
	assert.Equal(t, "Vestidos", original.Categories[0])
	assert.Equal(t, "https://cdn/a.jpg", original.MainImage.URL)
}
