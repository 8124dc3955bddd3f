package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"shoppulse/internal/dataset"
)

// CategoryRevenue is total revenue attributed to one product category.
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// RevenueByCategory inner-joins sales to products on product id and sums
// price per category, descending by revenue. Items whose product is unknown,
// and products with an empty category, drop out of the join; a category with
// no matching sales never appears, so no zero-revenue rows are emitted.
func RevenueByCategory(sales []dataset.SaleRecord, products []dataset.Product) []CategoryRevenue {
	categoryOf := make(map[string]string, len(products))
	for _, p := range products {
		if p.Category != "" {
			categoryOf[p.ID] = p.Category
		}
	}

	sums := make(map[string]decimal.Decimal)
	for _, s := range sales {
		cat, ok := categoryOf[s.ProductID]
		if !ok {
			continue
		}
		sums[cat] = sums[cat].Add(s.Price)
	}

	out := make([]CategoryRevenue, 0, len(sums))
	for cat, v := range sums {
		out = append(out, CategoryRevenue{Category: cat, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
