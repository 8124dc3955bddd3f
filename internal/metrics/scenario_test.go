package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/dataset"
)

// TestDeliveredOrderEndToEnd runs one order through the full preparation
// pipeline and the metric functions that consume it.
func TestDeliveredOrderEndToEnd(t *testing.T) {
	tables := &dataset.Tables{
		Orders: []dataset.RawOrder{{
			ID:          "1",
			Status:      "delivered",
			PurchasedAt: "2023-01-05 00:00:00",
			DeliveredAt: "2023-01-10 00:00:00",
		}},
		Items: []dataset.OrderItem{{
			OrderID:   "1",
			ItemSeq:   1,
			ProductID: "p1",
			Price:     decimal.NewFromInt(100),
		}},
		Products: []dataset.Product{{ID: "p1", Category: "A"}},
	}

	data := dataset.Prepare(tables)
	require.Len(t, data.Delivered, 1)

	assert.Equal(t, "100", TotalRevenue(data.Delivered).String())

	require.NotNil(t, data.Delivered[0].DeliveryDays)
	assert.Equal(t, 5, *data.Delivered[0].DeliveryDays)

	byCategory := RevenueByCategory(data.Delivered, data.Products)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "A", byCategory[0].Category)
	assert.Equal(t, "100", byCategory[0].Revenue.String())
}
