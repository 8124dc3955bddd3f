package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shoppulse/internal/metrics"
	"shoppulse/internal/services"
	"shoppulse/internal/shared/testutil"
)

func TestWriteSnapshot(t *testing.T) {
	logger, _ := testutil.NewLogger(t)
	writer := NewExcelWriter(t.TempDir(), logger)

	snap := &services.Snapshot{
		Start:             time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		End:               time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC),
		Revenue:           decimal.NewFromFloat(120.50),
		RevenueGrowth:     metrics.NewRatio(0.50625),
		AverageOrderValue: decimal.NewFromFloat(120.50),
		AOVGrowth:         metrics.UndefinedRatio(),
		Orders:            1,
		OrderGrowth:       metrics.NewRatio(0),
		AvgDeliveryDays:   8,
		AvgReviewScore:    3,
		ReviewCount:       1,
		MonthlyRevenue: []metrics.MonthRevenue{
			{Year: 2018, Month: 1, Revenue: decimal.NewFromFloat(120.50)},
		},
		TopCategories: []metrics.CategoryRevenue{
			{Category: "toys", Revenue: decimal.NewFromFloat(120.50)},
		},
		StateRevenue: []metrics.StateRevenue{
			{State: "RJ", Revenue: decimal.NewFromFloat(120.50)},
		},
	}
	reviews := &services.ReviewAnalysis{
		Buckets:           []metrics.BucketScore{{Bucket: metrics.BucketSlow, AvgScore: 3}},
		ScoreDistribution: []metrics.ScoreShare{{Score: 3, Share: 1}},
	}

	path, err := writer.WriteSnapshot(snap, reviews)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))
	assert.Contains(t, path, "dashboard_20180101_20181231_")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"KPIs", "Monthly Revenue", "Categories", "States", "Delivery & Reviews"}, sheets)

	rows, err := f.GetRows("KPIs")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Metric", "Value", "Change vs previous period"}, rows[0])
	assert.Equal(t, "Revenue", rows[1][0])
	assert.Equal(t, "50.6%", rows[1][2])
	// Undefined growth renders as n/a, never as a number.
	assert.Equal(t, "n/a", rows[3][2])

	monthly, err := f.GetRows("Monthly Revenue")
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, []string{"2018", "1", "120.5"}, monthly[1])
}

func TestWriteSnapshot_UniqueFilenames(t *testing.T) {
	logger, _ := testutil.NewLogger(t)
	writer := NewExcelWriter(t.TempDir(), logger)

	snap := &services.Snapshot{
		Start: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	first, err := writer.WriteSnapshot(snap, nil)
	require.NoError(t, err)
	second, err := writer.WriteSnapshot(snap, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
