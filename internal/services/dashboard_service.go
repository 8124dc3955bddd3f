package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shoppulse/internal/dataset"
	"shoppulse/internal/infrastructure"
	"shoppulse/internal/metrics"
)

// DashboardService computes dashboard snapshots from the cached dataset.
// It holds no mutable state beyond the store; concurrent calls are safe.
type DashboardService struct {
	store         *dataset.Store
	logger        *slog.Logger
	tracer        trace.Tracer
	topCategories int
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(store *dataset.Store, logger *slog.Logger, topCategories int) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if topCategories <= 0 {
		topCategories = 10
	}
	return &DashboardService{
		store:         store,
		logger:        logger.With(slog.String("component", "dashboard_service")),
		tracer:        otel.Tracer(infrastructure.TracerName),
		topCategories: topCategories,
	}
}

// Snapshot is the full dashboard state for one date range, with deltas
// against the comparison period of equal length directly before the range.
// Undefined deltas (no comparison data, zero base) serialize as null.
type Snapshot struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	GeneratedAt time.Time `json:"generated_at"`

	Revenue           decimal.Decimal `json:"revenue"`
	RevenueGrowth     metrics.Ratio   `json:"revenue_growth"`
	AvgMonthlyGrowth  metrics.Ratio   `json:"avg_monthly_growth"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	AOVGrowth         metrics.Ratio   `json:"aov_growth"`
	Orders            int             `json:"orders"`
	OrderGrowth       metrics.Ratio   `json:"order_growth"`

	// AvgDeliveryDays delta: lower is better; the caller inverts the
	// good/bad coloring.
	AvgDeliveryDays float64       `json:"avg_delivery_days"`
	DeliveryGrowth  metrics.Ratio `json:"delivery_growth"`

	AvgReviewScore float64 `json:"avg_review_score"`
	ReviewCount    int     `json:"review_count"`

	MonthlyRevenue         []metrics.MonthRevenue    `json:"monthly_revenue"`
	PreviousMonthlyRevenue []metrics.MonthRevenue    `json:"previous_monthly_revenue,omitempty"`
	TopCategories          []metrics.CategoryRevenue `json:"top_categories"`
	StateRevenue           []metrics.StateRevenue    `json:"state_revenue"`
	ReviewBuckets          []metrics.BucketScore     `json:"review_buckets"`
	ScoreDistribution      []metrics.ScoreShare      `json:"score_distribution"`
}

// Snapshot computes the dashboard snapshot for the inclusive calendar-date
// range [start, end].
func (s *DashboardService) Snapshot(ctx context.Context, start, end time.Time) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.snapshot",
		trace.WithAttributes(
			attribute.String("range.start", start.Format("2006-01-02")),
			attribute.String("range.end", end.Format("2006-01-02")),
		))
	defer span.End()

	data, err := s.store.Data(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	current := dataset.FilterByDateRange(data.Delivered, start, end)

	// Comparison period of equal length directly before start.
	periodDays := int(end.Sub(start).Hours() / 24)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -periodDays)
	previous := dataset.FilterByDateRange(data.Delivered, prevStart, prevEnd)
	hasComparison := len(previous) > 0

	snap := &Snapshot{
		Start:       start,
		End:         end,
		GeneratedAt: time.Now().UTC(),

		Revenue:           metrics.TotalRevenue(current),
		AvgMonthlyGrowth:  metrics.AverageMoMGrowth(current),
		AverageOrderValue: metrics.AverageOrderValue(current),
		Orders:            metrics.TotalOrders(current),

		MonthlyRevenue: metrics.MonthlyRevenue(current),
		TopCategories:  topN(metrics.RevenueByCategory(current, data.Products), s.topCategories),
		StateRevenue:   metrics.RevenueByState(current, data.Orders, data.Customers),
	}

	if hasComparison {
		snap.RevenueGrowth = metrics.RevenueGrowth(current, previous)
		snap.AOVGrowth = metrics.AOVGrowth(current, previous)
		snap.OrderGrowth = metrics.OrderCountGrowth(current, previous)
		snap.PreviousMonthlyRevenue = metrics.MonthlyRevenue(previous)
	}

	summary, diag := metrics.ReviewDeliverySummary(current, data.Reviews)
	s.reportDiagnostics(ctx, diag)

	snap.AvgDeliveryDays = metrics.AverageDeliveryDays(summary)
	snap.AvgReviewScore = metrics.AverageReviewScore(summary)
	snap.ReviewCount = len(summary)
	snap.ReviewBuckets = metrics.AvgReviewByDeliveryBucket(summary)
	snap.ScoreDistribution = metrics.ReviewScoreDistribution(summary)

	if hasComparison {
		prevSummary, _ := metrics.ReviewDeliverySummary(previous, data.Reviews)
		if len(prevSummary) > 0 {
			prevAvg := metrics.AverageDeliveryDays(prevSummary)
			if prevAvg != 0 {
				snap.DeliveryGrowth = metrics.NewRatio((snap.AvgDeliveryDays - prevAvg) / prevAvg)
			}
		}
	}

	span.SetAttributes(
		attribute.Int("rows.current", len(current)),
		attribute.Int("rows.previous", len(previous)),
	)

	return snap, nil
}

// MonthlyRevenue returns the (year, month) revenue series for the range,
// with the comparison-period series when comparison data exists.
func (s *DashboardService) MonthlyRevenue(ctx context.Context, start, end time.Time) (current, previous []metrics.MonthRevenue, err error) {
	data, err := s.store.Data(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: %w", err)
	}

	rows := dataset.FilterByDateRange(data.Delivered, start, end)

	periodDays := int(end.Sub(start).Hours() / 24)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -periodDays)
	prevRows := dataset.FilterByDateRange(data.Delivered, prevStart, prevEnd)

	current = metrics.MonthlyRevenue(rows)
	if len(prevRows) > 0 {
		previous = metrics.MonthlyRevenue(prevRows)
	}
	return current, previous, nil
}

// TopCategories returns the category revenue ranking for the range, capped
// at limit (the configured default when limit <= 0).
func (s *DashboardService) TopCategories(ctx context.Context, start, end time.Time, limit int) ([]metrics.CategoryRevenue, error) {
	data, err := s.store.Data(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if limit <= 0 {
		limit = s.topCategories
	}
	rows := dataset.FilterByDateRange(data.Delivered, start, end)
	return topN(metrics.RevenueByCategory(rows, data.Products), limit), nil
}

// StateRevenue returns the per-state revenue ranking for the range.
func (s *DashboardService) StateRevenue(ctx context.Context, start, end time.Time) ([]metrics.StateRevenue, error) {
	data, err := s.store.Data(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	rows := dataset.FilterByDateRange(data.Delivered, start, end)
	return metrics.RevenueByState(rows, data.Orders, data.Customers), nil
}

// ReviewAnalysis bundles the customer-experience aggregates for one range.
type ReviewAnalysis struct {
	Buckets           []metrics.BucketScore `json:"buckets"`
	ByDeliveryDay     []metrics.DayScore    `json:"by_delivery_day"`
	ScoreDistribution []metrics.ScoreShare  `json:"score_distribution"`
	AvgDeliveryDays   float64               `json:"avg_delivery_days"`
	AvgReviewScore    float64               `json:"avg_review_score"`
	ReviewCount       int                   `json:"review_count"`
}

// Reviews computes the review-delivery analysis for the range.
func (s *DashboardService) Reviews(ctx context.Context, start, end time.Time) (*ReviewAnalysis, error) {
	data, err := s.store.Data(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	rows := dataset.FilterByDateRange(data.Delivered, start, end)
	summary, diag := metrics.ReviewDeliverySummary(rows, data.Reviews)
	s.reportDiagnostics(ctx, diag)

	return &ReviewAnalysis{
		Buckets:           metrics.AvgReviewByDeliveryBucket(summary),
		ByDeliveryDay:     metrics.AvgReviewByDeliveryDay(summary),
		ScoreDistribution: metrics.ReviewScoreDistribution(summary),
		AvgDeliveryDays:   metrics.AverageDeliveryDays(summary),
		AvgReviewScore:    metrics.AverageReviewScore(summary),
		ReviewCount:       len(summary),
	}, nil
}

// StatusDistribution returns the normalized status frequencies for orders
// purchased in the given year.
func (s *DashboardService) StatusDistribution(ctx context.Context, year int) ([]metrics.StatusShare, error) {
	data, err := s.store.Data(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return metrics.OrderStatusDistribution(data.Orders, year), nil
}

// DateBounds returns the earliest and latest purchase dates in the delivered
// history, used as defaults when a request omits the range.
func (s *DashboardService) DateBounds(ctx context.Context) (min, max time.Time, err error) {
	data, err := s.store.Data(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("dataset: %w", err)
	}
	min, max, ok := dataset.PurchaseBounds(data.Delivered)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("no delivered sales with purchase dates")
	}
	return min, max, nil
}

func (s *DashboardService) reportDiagnostics(ctx context.Context, diag metrics.SummaryDiagnostics) {
	if diag.NegativeDeliveryDays > 0 {
		s.logger.WarnContext(ctx, "orders delivered before purchase in review summary",
			slog.Int("rows", diag.NegativeDeliveryDays))
	}
	if diag.DuplicateReviewOrders > 0 {
		s.logger.WarnContext(ctx, "orders with multiple reviews in summary",
			slog.Int("orders", diag.DuplicateReviewOrders))
	}
}

func topN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
