// Command reportgen generates dashboard reports from the raw CSV datasets
// without running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"shoppulse/internal/config"
	"shoppulse/internal/dataset"
	"shoppulse/internal/exporter"
	"shoppulse/internal/infrastructure"
	"shoppulse/internal/services"
)

func main() {
	dataDir := flag.String("data", "", "directory containing the raw CSV datasets (defaults to config)")
	outDir := flag.String("out", "", "output directory for reports (defaults to config)")
	startRaw := flag.String("start", "", "range start date, YYYY-MM-DD (defaults to earliest purchase)")
	endRaw := flag.String("end", "", "range end date, YYYY-MM-DD (defaults to latest purchase)")
	format := flag.String("format", "xlsx", "report format: xlsx or csv")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *dataDir == "" {
		*dataDir = cfg.Data.Dir
	}
	if *outDir == "" {
		*outDir = cfg.Data.ReportsDir
	}

	ctx := context.Background()

	store := dataset.NewStore(dataset.NewLoader(*dataDir, logger), logger)
	service := services.NewDashboardService(store, logger, cfg.Dashboard.TopCategories)

	start, end, err := resolveRange(ctx, service, *startRaw, *endRaw)
	if err != nil {
		logger.Error("invalid date range", "error", err)
		os.Exit(1)
	}

	snap, err := service.Snapshot(ctx, start, end)
	if err != nil {
		logger.Error("failed to compute snapshot", "error", err)
		os.Exit(1)
	}
	reviews, err := service.Reviews(ctx, start, end)
	if err != nil {
		logger.Error("failed to compute review analysis", "error", err)
		os.Exit(1)
	}

	var path string
	switch *format {
	case "xlsx":
		path, err = exporter.NewExcelWriter(*outDir, logger).WriteSnapshot(snap, reviews)
	case "csv":
		path, err = writeCSVReports(*outDir, logger, snap)
	default:
		logger.Error("unknown format", "format", *format)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	logger.Info("report generated",
		slog.String("path", path),
		slog.String("start", start.Format("2006-01-02")),
		slog.String("end", end.Format("2006-01-02")))
}

// resolveRange parses the flag dates, falling back to the dataset's
// purchase-date bounds for whichever side is absent.
func resolveRange(ctx context.Context, service *services.DashboardService, startRaw, endRaw string) (start, end time.Time, err error) {
	if startRaw == "" || endRaw == "" {
		start, end, err = service.DateBounds(ctx)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if startRaw != "" {
		start, err = time.Parse("2006-01-02", startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse start date: %w", err)
		}
	}
	if endRaw != "" {
		end, err = time.Parse("2006-01-02", endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse end date: %w", err)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s", endRaw, startRaw)
	}
	return start, end, nil
}

// writeCSVReports writes the monthly revenue series as a BOM-prefixed CSV
// so spreadsheet tools pick up the encoding.
func writeCSVReports(dir string, logger *slog.Logger, snap *services.Snapshot) (string, error) {
	writer := exporter.NewCSVWriter(dir, logger)

	records := make([][]string, 0, len(snap.MonthlyRevenue))
	for _, m := range snap.MonthlyRevenue {
		records = append(records, []string{
			fmt.Sprintf("%d", m.Year),
			fmt.Sprintf("%d", m.Month),
			m.Revenue.StringFixed(2),
		})
	}

	name := fmt.Sprintf("monthly_revenue_%s_%s.csv",
		snap.Start.Format("20060102"), snap.End.Format("20060102"))
	return writer.WriteCSV(name, exporter.WriteOptions{
		Headers:   []string{"year", "month", "revenue"},
		Records:   records,
		BOMPrefix: true,
	})
}
