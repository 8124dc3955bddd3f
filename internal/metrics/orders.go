package metrics

import (
	"github.com/shopspring/decimal"

	"shoppulse/internal/dataset"
)

// TotalOrders counts distinct order identifiers across the rows.
func TotalOrders(rows []dataset.SaleRecord) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[r.OrderID] = struct{}{}
	}
	return len(seen)
}

// OrderCountGrowth is the fractional change in distinct order count between
// two periods. Undefined when the previous period has no orders.
func OrderCountGrowth(current, previous []dataset.SaleRecord) Ratio {
	return growth(float64(TotalOrders(current)), float64(TotalOrders(previous)))
}

// AverageOrderValue is the mean, across distinct orders, of each order's
// summed item prices. This is the mean of per-order sums, not the mean item
// price: one order with items priced 10, 20 and 30 contributes 60, not 20.
// Empty input yields zero.
func AverageOrderValue(rows []dataset.SaleRecord) decimal.Decimal {
	perOrder := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		perOrder[r.OrderID] = perOrder[r.OrderID].Add(r.Price)
	}
	if len(perOrder) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, v := range perOrder {
		total = total.Add(v)
	}
	return total.Div(decimal.NewFromInt(int64(len(perOrder))))
}

// AOVGrowth is the fractional change in average order value between two
// periods. Undefined when the previous period's AOV is zero.
func AOVGrowth(current, previous []dataset.SaleRecord) Ratio {
	return growth(AverageOrderValue(current).InexactFloat64(), AverageOrderValue(previous).InexactFloat64())
}
