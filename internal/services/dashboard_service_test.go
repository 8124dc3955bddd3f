package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/dataset"
	"shoppulse/internal/metrics"
	"shoppulse/internal/shared/testutil"
)

// newTestService builds a service over the default fixture dataset: two
// delivered orders (o1: 2017-05-01, 80.00 over two items, 3-day delivery,
// score 5; o2: 2018-01-15, 120.50, 8-day delivery, score 3) and one shipped
// order.
func newTestService(t *testing.T) *DashboardService {
	t.Helper()
	logger, _ := testutil.NewLogger(t)
	dir := testutil.WriteDataset(t, testutil.DefaultDataset())
	store := dataset.NewStore(dataset.NewLoader(dir, logger), logger)
	return NewDashboardService(store, logger, 10)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSnapshot_WithComparisonPeriod(t *testing.T) {
	service := newTestService(t)

	// Current year 2018 (o2 only); comparison is the equal-length window
	// ending 2017-12-31, which contains o1.
	snap, err := service.Snapshot(context.Background(), day(2018, 1, 1), day(2018, 12, 31))
	require.NoError(t, err)

	assert.Equal(t, "120.5", snap.Revenue.String())
	assert.Equal(t, 1, snap.Orders)
	assert.Equal(t, "120.5", snap.AverageOrderValue.String())

	require.True(t, snap.RevenueGrowth.Valid())
	assert.InDelta(t, (120.50-80)/80, snap.RevenueGrowth.Value(), 1e-9)
	require.True(t, snap.OrderGrowth.Valid())
	assert.Zero(t, snap.OrderGrowth.Value())
	require.True(t, snap.AOVGrowth.Valid())
	assert.InDelta(t, (120.50-80)/80, snap.AOVGrowth.Value(), 1e-9)

	assert.InDelta(t, 8.0, snap.AvgDeliveryDays, 1e-9)
	require.True(t, snap.DeliveryGrowth.Valid())
	assert.InDelta(t, (8.0-3.0)/3.0, snap.DeliveryGrowth.Value(), 1e-9)

	assert.InDelta(t, 3.0, snap.AvgReviewScore, 1e-9)
	assert.Equal(t, 1, snap.ReviewCount)

	require.Len(t, snap.MonthlyRevenue, 1)
	assert.Equal(t, 2018, snap.MonthlyRevenue[0].Year)
	require.Len(t, snap.PreviousMonthlyRevenue, 1)
	assert.Equal(t, 2017, snap.PreviousMonthlyRevenue[0].Year)

	require.Len(t, snap.ReviewBuckets, 1)
	assert.Equal(t, metrics.BucketSlow, snap.ReviewBuckets[0].Bucket)
}

func TestSnapshot_NoComparisonData(t *testing.T) {
	service := newTestService(t)

	// 2017 is the earliest data; the comparison window before it is empty,
	// so every delta is undefined rather than zero.
	snap, err := service.Snapshot(context.Background(), day(2017, 1, 1), day(2017, 12, 31))
	require.NoError(t, err)

	assert.Equal(t, "80", snap.Revenue.String())
	assert.False(t, snap.RevenueGrowth.Valid())
	assert.False(t, snap.OrderGrowth.Valid())
	assert.False(t, snap.AOVGrowth.Valid())
	assert.False(t, snap.DeliveryGrowth.Valid())
	assert.Empty(t, snap.PreviousMonthlyRevenue)
}

func TestSnapshot_EmptyRange(t *testing.T) {
	service := newTestService(t)

	snap, err := service.Snapshot(context.Background(), day(2020, 1, 1), day(2020, 12, 31))
	require.NoError(t, err)

	assert.True(t, snap.Revenue.IsZero())
	assert.Zero(t, snap.Orders)
	assert.Empty(t, snap.MonthlyRevenue)
	assert.Zero(t, snap.ReviewCount)
}

func TestMonthlyRevenue(t *testing.T) {
	service := newTestService(t)

	current, previous, err := service.MonthlyRevenue(context.Background(), day(2018, 1, 1), day(2018, 12, 31))
	require.NoError(t, err)

	require.Len(t, current, 1)
	assert.Equal(t, 1, current[0].Month)
	assert.Equal(t, "120.5", current[0].Revenue.String())
	require.Len(t, previous, 1)
	assert.Equal(t, 5, previous[0].Month)
}

func TestTopCategories(t *testing.T) {
	service := newTestService(t)

	all, err := service.TopCategories(context.Background(), day(2017, 1, 1), day(2018, 12, 31), 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "toys", all[0].Category) // 50 + 120.50
	assert.Equal(t, "170.5", all[0].Revenue.String())

	capped, err := service.TopCategories(context.Background(), day(2017, 1, 1), day(2018, 12, 31), 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, "toys", capped[0].Category)
}

func TestStateRevenue(t *testing.T) {
	service := newTestService(t)

	states, err := service.StateRevenue(context.Background(), day(2017, 1, 1), day(2018, 12, 31))
	require.NoError(t, err)

	require.Len(t, states, 2)
	assert.Equal(t, "RJ", states[0].State)
	assert.Equal(t, "120.5", states[0].Revenue.String())
	assert.Equal(t, "SP", states[1].State)
	assert.Equal(t, "80", states[1].Revenue.String())
}

func TestReviews(t *testing.T) {
	service := newTestService(t)

	analysis, err := service.Reviews(context.Background(), day(2017, 1, 1), day(2018, 12, 31))
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.ReviewCount)
	assert.InDelta(t, 5.5, analysis.AvgDeliveryDays, 1e-9)
	assert.InDelta(t, 4.0, analysis.AvgReviewScore, 1e-9)
	require.Len(t, analysis.Buckets, 2)
	assert.Equal(t, metrics.BucketFast, analysis.Buckets[0].Bucket)
	assert.Equal(t, metrics.BucketSlow, analysis.Buckets[1].Bucket)
	require.Len(t, analysis.ByDeliveryDay, 2)
	assert.Equal(t, 3, analysis.ByDeliveryDay[0].DeliveryDays)
}

func TestStatusDistribution(t *testing.T) {
	service := newTestService(t)

	dist, err := service.StatusDistribution(context.Background(), 2018)
	require.NoError(t, err)

	// 2018 has one delivered and one shipped order.
	require.Len(t, dist, 2)
	assert.InDelta(t, 0.5, dist[0].Share, 1e-9)
	assert.InDelta(t, 0.5, dist[1].Share, 1e-9)
}

func TestDateBounds(t *testing.T) {
	service := newTestService(t)

	min, max, err := service.DateBounds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2017, min.Year())
	assert.Equal(t, time.May, min.Month())
	assert.Equal(t, 2018, max.Year())
	assert.Equal(t, time.January, max.Month())
}
