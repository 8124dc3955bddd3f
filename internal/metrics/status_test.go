package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/dataset"
)

func orderIn(year int, status string) dataset.Order {
	ts := time.Date(year, 6, 15, 10, 0, 0, 0, time.UTC)
	return dataset.Order{ID: status + "-" + ts.String(), Status: status, PurchasedAt: &ts}
}

func TestOrderStatusDistribution(t *testing.T) {
	orders := []dataset.Order{
		orderIn(2017, "delivered"),
		orderIn(2017, "delivered"),
		orderIn(2017, "delivered"),
		orderIn(2017, "canceled"),
		orderIn(2018, "delivered"),      // other year
		{ID: "x", Status: "delivered"},  // nil purchase date never matches
	}

	got := OrderStatusDistribution(orders, 2017)

	require.Len(t, got, 2)
	assert.Equal(t, "delivered", got[0].Status)
	assert.InDelta(t, 0.75, got[0].Share, 1e-9)
	assert.Equal(t, "canceled", got[1].Status)
	assert.InDelta(t, 0.25, got[1].Share, 1e-9)

	var total float64
	for _, s := range got {
		total += s.Share
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestOrderStatusDistribution_EmptyYear(t *testing.T) {
	orders := []dataset.Order{orderIn(2017, "delivered")}
	assert.Nil(t, OrderStatusDistribution(orders, 2020))
	assert.Nil(t, OrderStatusDistribution(nil, 2017))
}
