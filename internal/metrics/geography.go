package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"shoppulse/internal/dataset"
)

// StateRevenue is total revenue attributed to one customer state.
type StateRevenue struct {
	State   string          `json:"state"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueByState joins sales to orders on order id and orders to customers
// on customer id, then sums price per customer state, descending by revenue.
// Both joins are inner: rows that fail either lookup drop out silently.
func RevenueByState(sales []dataset.SaleRecord, orders []dataset.Order, customers []dataset.Customer) []StateRevenue {
	customerOf := make(map[string]string, len(orders))
	for _, o := range orders {
		customerOf[o.ID] = o.CustomerID
	}
	stateOf := make(map[string]string, len(customers))
	for _, c := range customers {
		stateOf[c.ID] = c.State
	}

	sums := make(map[string]decimal.Decimal)
	for _, s := range sales {
		customerID, ok := customerOf[s.OrderID]
		if !ok {
			continue
		}
		state, ok := stateOf[customerID]
		if !ok {
			continue
		}
		sums[state] = sums[state].Add(s.Price)
	}

	out := make([]StateRevenue, 0, len(sums))
	for state, v := range sums {
		out = append(out, StateRevenue{State: state, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].State < out[j].State
	})
	return out
}
