package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"shoppulse/internal/metrics"
	"shoppulse/internal/services"
)

// ExcelWriter renders dashboard snapshots as multi-sheet workbooks.
type ExcelWriter struct {
	dir    string
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer rooted at the given reports
// directory.
func NewExcelWriter(dir string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{dir: dir, logger: logger}
}

// WriteSnapshot writes the snapshot to a workbook with one sheet per
// dashboard section and returns the file path. Each run gets a unique
// filename so repeated exports never clobber each other.
func (w *ExcelWriter) WriteSnapshot(snap *services.Snapshot, reviews *services.ReviewAnalysis) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	name := fmt.Sprintf("dashboard_%s_%s_%s.xlsx",
		snap.Start.Format("20060102"),
		snap.End.Format("20060102"),
		uuid.NewString()[:8])
	path := filepath.Join(w.dir, name)

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeKPISheet(f, snap); err != nil {
		return "", err
	}
	if err := w.writeMonthlySheet(f, snap); err != nil {
		return "", err
	}
	if err := w.writeCategorySheet(f, snap.TopCategories); err != nil {
		return "", err
	}
	if err := w.writeStateSheet(f, snap.StateRevenue); err != nil {
		return "", err
	}
	if reviews != nil {
		if err := w.writeReviewSheet(f, reviews); err != nil {
			return "", err
		}
	}

	// The default "Sheet1" is replaced by the KPI sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("workbook written",
		slog.String("path", path),
		slog.Time("range_start", snap.Start),
		slog.Time("range_end", snap.End))

	return path, nil
}

func (w *ExcelWriter) writeKPISheet(f *excelize.File, snap *services.Snapshot) error {
	const sheet = "KPIs"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Metric", "Value", "Change vs previous period"},
		{"Revenue", snap.Revenue.InexactFloat64(), ratioCell(snap.RevenueGrowth)},
		{"Avg monthly growth", ratioCell(snap.AvgMonthlyGrowth), ""},
		{"Average order value", snap.AverageOrderValue.InexactFloat64(), ratioCell(snap.AOVGrowth)},
		{"Orders", snap.Orders, ratioCell(snap.OrderGrowth)},
		{"Avg delivery days", snap.AvgDeliveryDays, ratioCell(snap.DeliveryGrowth)},
		{"Avg review score", snap.AvgReviewScore, ""},
		{"Reviews", snap.ReviewCount, ""},
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeMonthlySheet(f *excelize.File, snap *services.Snapshot) error {
	const sheet = "Monthly Revenue"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Year", "Month", "Revenue"}}
	for _, m := range snap.MonthlyRevenue {
		rows = append(rows, []interface{}{m.Year, m.Month, m.Revenue.InexactFloat64()})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeCategorySheet(f *excelize.File, categories []metrics.CategoryRevenue) error {
	const sheet = "Categories"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Category", "Revenue"}}
	for _, c := range categories {
		rows = append(rows, []interface{}{c.Category, c.Revenue.InexactFloat64()})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeStateSheet(f *excelize.File, states []metrics.StateRevenue) error {
	const sheet = "States"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"State", "Revenue"}}
	for _, s := range states {
		rows = append(rows, []interface{}{s.State, s.Revenue.InexactFloat64()})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeReviewSheet(f *excelize.File, reviews *services.ReviewAnalysis) error {
	const sheet = "Delivery & Reviews"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Delivery bucket", "Avg review score"}}
	for _, b := range reviews.Buckets {
		rows = append(rows, []interface{}{string(b.Bucket), b.AvgScore})
	}
	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"Review score", "Share"})
	for _, s := range reviews.ScoreDistribution {
		rows = append(rows, []interface{}{s.Score, s.Share})
	}
	return writeRows(f, sheet, rows)
}

// ratioCell renders a ratio as a percentage string, or "n/a" when the
// ratio is undefined.
func ratioCell(r metrics.Ratio) string {
	if !r.Valid() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", r.Value()*100)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
