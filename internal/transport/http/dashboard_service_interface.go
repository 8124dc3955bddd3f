package http

import (
	"context"
	"time"

	"shoppulse/internal/metrics"
	"shoppulse/internal/services"
)

// DashboardServiceInterface defines the dashboard operations the handler
// depends on. Declared here so tests can substitute a fake service.
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context, start, end time.Time) (*services.Snapshot, error)
	MonthlyRevenue(ctx context.Context, start, end time.Time) (current, previous []metrics.MonthRevenue, err error)
	TopCategories(ctx context.Context, start, end time.Time, limit int) ([]metrics.CategoryRevenue, error)
	StateRevenue(ctx context.Context, start, end time.Time) ([]metrics.StateRevenue, error)
	Reviews(ctx context.Context, start, end time.Time) (*services.ReviewAnalysis, error)
	StatusDistribution(ctx context.Context, year int) ([]metrics.StatusShare, error)
	DateBounds(ctx context.Context) (min, max time.Time, err error)
}
