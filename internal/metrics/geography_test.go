package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/dataset"
)

func TestRevenueByState(t *testing.T) {
	orders := []dataset.Order{
		{ID: "o1", CustomerID: "c1"},
		{ID: "o2", CustomerID: "c2"},
		{ID: "o3", CustomerID: "c1"},
		{ID: "o4", CustomerID: "missing"},
	}
	customers := []dataset.Customer{
		{ID: "c1", State: "SP"},
		{ID: "c2", State: "RJ"},
	}
	sales := []dataset.SaleRecord{
		sale("o1", 100, 2017, 1),
		sale("o2", 250, 2017, 1),
		sale("o3", 50, 2017, 2),
		sale("o4", 999, 2017, 2),     // customer unknown
		sale("orphan", 999, 2017, 2), // order unknown
	}

	got := RevenueByState(sales, orders, customers)

	require.Len(t, got, 2)
	assert.Equal(t, "RJ", got[0].State)
	assert.Equal(t, "250", got[0].Revenue.String())
	assert.Equal(t, "SP", got[1].State)
	assert.Equal(t, "150", got[1].Revenue.String())

	assert.Empty(t, RevenueByState(nil, orders, customers))
}
