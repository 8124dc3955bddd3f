package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/dataset"
)

// sale builds one item-grain sale row with the derived fields set.
func sale(orderID string, price float64, year, month int) dataset.SaleRecord {
	return dataset.SaleRecord{
		OrderID: orderID,
		Price:   decimal.NewFromFloat(price),
		Status:  dataset.StatusDelivered,
		Year:    year,
		Month:   month,
	}
}

func TestTotalRevenue(t *testing.T) {
	assert.True(t, TotalRevenue(nil).IsZero())

	rows := []dataset.SaleRecord{
		sale("o1", 10.50, 2017, 1),
		sale("o1", 20.25, 2017, 1),
		sale("o2", 5, 2017, 2),
	}
	assert.Equal(t, "35.75", TotalRevenue(rows).String())
}

func TestRevenueGrowth(t *testing.T) {
	current := []dataset.SaleRecord{sale("o1", 150, 2018, 1)}
	previous := []dataset.SaleRecord{sale("o2", 100, 2017, 12)}

	g := RevenueGrowth(current, previous)
	require.True(t, g.Valid())
	assert.InDelta(t, 0.5, g.Value(), 1e-9)

	// Identical periods grow by exactly zero.
	same := RevenueGrowth(previous, previous)
	require.True(t, same.Valid())
	assert.Zero(t, same.Value())

	// Empty previous period has no defined growth.
	assert.False(t, RevenueGrowth(current, nil).Valid())
}

func TestMonthlyRevenue(t *testing.T) {
	rows := []dataset.SaleRecord{
		sale("o1", 100, 2018, 1),
		sale("o2", 50, 2017, 12),
		sale("o3", 25, 2018, 1),
		sale("o4", 10, 2017, 5),
	}

	got := MonthlyRevenue(rows)

	require.Len(t, got, 3)
	assert.Equal(t, MonthRevenue{Year: 2017, Month: 5, Revenue: decimal.NewFromInt(10)}, got[0])
	assert.Equal(t, 2017, got[1].Year)
	assert.Equal(t, 12, got[1].Month)
	assert.Equal(t, "125", got[2].Revenue.String())

	assert.Empty(t, MonthlyRevenue(nil))
}

func TestMonthOverMonthGrowth(t *testing.T) {
	rows := []dataset.SaleRecord{
		sale("o1", 100, 2017, 1),
		sale("o2", 150, 2017, 2),
		sale("o3", 90, 2017, 3),
	}

	got := MonthOverMonthGrowth(rows)

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Month)
	assert.False(t, got[0].Growth.Valid())
	require.True(t, got[1].Growth.Valid())
	assert.InDelta(t, 0.5, got[1].Growth.Value(), 1e-9)
	require.True(t, got[2].Growth.Valid())
	assert.InDelta(t, -0.4, got[2].Growth.Value(), 1e-9)
}

func TestMonthOverMonthGrowth_MixesYears(t *testing.T) {
	// Same calendar month across years lands in one bucket.
	rows := []dataset.SaleRecord{
		sale("o1", 60, 2017, 1),
		sale("o2", 40, 2018, 1),
		sale("o3", 200, 2018, 2),
	}

	got := MonthOverMonthGrowth(rows)

	require.Len(t, got, 2)
	require.True(t, got[1].Growth.Valid())
	assert.InDelta(t, 1.0, got[1].Growth.Value(), 1e-9) // 200 vs 100
}

func TestMonthOverMonthGrowth_SkipsUnobservedMonths(t *testing.T) {
	// January and April observed; the April change is against January,
	// not against the empty months between.
	rows := []dataset.SaleRecord{
		sale("o1", 100, 2017, 1),
		sale("o2", 50, 2017, 4),
	}

	got := MonthOverMonthGrowth(rows)

	require.Len(t, got, 2)
	assert.Equal(t, 4, got[1].Month)
	require.True(t, got[1].Growth.Valid())
	assert.InDelta(t, -0.5, got[1].Growth.Value(), 1e-9)
}

func TestAverageMoMGrowth(t *testing.T) {
	rows := []dataset.SaleRecord{
		sale("o1", 100, 2017, 1),
		sale("o2", 150, 2017, 2),
		sale("o3", 90, 2017, 3),
	}

	// Mean of 0.5 and -0.4; the undefined first month is skipped.
	avg := AverageMoMGrowth(rows)
	require.True(t, avg.Valid())
	assert.InDelta(t, 0.05, avg.Value(), 1e-9)

	// A single observed month has no defined growth at all.
	assert.False(t, AverageMoMGrowth([]dataset.SaleRecord{sale("o1", 100, 2017, 1)}).Valid())
	assert.False(t, AverageMoMGrowth(nil).Valid())
}
