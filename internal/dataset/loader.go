package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Dataset file names within the data directory.
const (
	OrdersFile    = "orders_dataset.csv"
	ItemsFile     = "order_items_dataset.csv"
	ProductsFile  = "products_dataset.csv"
	CustomersFile = "customers_dataset.csv"
	ReviewsFile   = "order_reviews_dataset.csv"
	PaymentsFile  = "order_payments_dataset.csv"
)

// DataFiles lists every dataset file the loader reads, in load order.
var DataFiles = []string{
	OrdersFile, ItemsFile, ProductsFile, CustomersFile, ReviewsFile, PaymentsFile,
}

// Loader reads the raw CSV tables from a data directory.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader creates a loader for the given data directory.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// Dir returns the data directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads all six tables concurrently and returns them as one snapshot.
// A missing or malformed file fails the whole load; per-row oddities (bad
// numbers, missing columns in a row) drop the row instead.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	t := &Tables{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t.Orders, err = l.loadOrders(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		t.Items, err = l.loadItems(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		t.Products, err = l.loadProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		t.Customers, err = l.loadCustomers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		t.Reviews, err = l.loadReviews(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		t.Payments, err = l.loadPayments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "datasets loaded",
		slog.String("dir", l.dir),
		slog.Int("orders", len(t.Orders)),
		slog.Int("items", len(t.Items)),
		slog.Int("products", len(t.Products)),
		slog.Int("customers", len(t.Customers)),
		slog.Int("reviews", len(t.Reviews)),
		slog.Int("payments", len(t.Payments)))

	return t, nil
}

// table is a parsed CSV file with a header index.
type table struct {
	header map[string]int
	rows   [][]string
}

// col returns the value of the named column in a row, or "" when the column
// is absent or the row is short.
func (t *table) col(row []string, name string) string {
	i, ok := t.header[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readTable reads a CSV file, strips a UTF-8 BOM if present, and indexes the
// header columns by their normalized (lowercased, trimmed) names.
func (l *Loader) readTable(ctx context.Context, name string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", name)
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		header[strings.ToLower(h)] = i
	}

	return &table{header: header, rows: records[1:]}, nil
}

func (l *Loader) loadOrders(ctx context.Context) ([]RawOrder, error) {
	t, err := l.readTable(ctx, OrdersFile)
	if err != nil {
		return nil, err
	}
	orders := make([]RawOrder, 0, len(t.rows))
	for _, row := range t.rows {
		id := t.col(row, "order_id")
		if id == "" {
			continue
		}
		orders = append(orders, RawOrder{
			ID:          id,
			CustomerID:  t.col(row, "customer_id"),
			Status:      t.col(row, "order_status"),
			PurchasedAt: t.col(row, "order_purchase_timestamp"),
			ApprovedAt:  t.col(row, "order_approved_at"),
			CarrierAt:   t.col(row, "order_delivered_carrier_date"),
			DeliveredAt: t.col(row, "order_delivered_customer_date"),
			EstimatedAt: t.col(row, "order_estimated_delivery_date"),
		})
	}
	return orders, nil
}

func (l *Loader) loadItems(ctx context.Context) ([]OrderItem, error) {
	t, err := l.readTable(ctx, ItemsFile)
	if err != nil {
		return nil, err
	}
	items := make([]OrderItem, 0, len(t.rows))
	for _, row := range t.rows {
		orderID := t.col(row, "order_id")
		if orderID == "" {
			continue
		}
		price, err := decimal.NewFromString(t.col(row, "price"))
		if err != nil {
			l.logger.WarnContext(ctx, "dropping item row with bad price",
				slog.String("order_id", orderID),
				slog.String("price", t.col(row, "price")))
			continue
		}
		seq, _ := strconv.Atoi(t.col(row, "order_item_id"))
		items = append(items, OrderItem{
			OrderID:   orderID,
			ItemSeq:   seq,
			ProductID: t.col(row, "product_id"),
			Price:     price,
		})
	}
	return items, nil
}

func (l *Loader) loadProducts(ctx context.Context) ([]Product, error) {
	t, err := l.readTable(ctx, ProductsFile)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(t.rows))
	for _, row := range t.rows {
		id := t.col(row, "product_id")
		if id == "" {
			continue
		}
		products = append(products, Product{
			ID:       id,
			Category: t.col(row, "product_category_name"),
		})
	}
	return products, nil
}

func (l *Loader) loadCustomers(ctx context.Context) ([]Customer, error) {
	t, err := l.readTable(ctx, CustomersFile)
	if err != nil {
		return nil, err
	}
	customers := make([]Customer, 0, len(t.rows))
	for _, row := range t.rows {
		id := t.col(row, "customer_id")
		if id == "" {
			continue
		}
		customers = append(customers, Customer{
			ID:    id,
			State: t.col(row, "customer_state"),
		})
	}
	return customers, nil
}

func (l *Loader) loadReviews(ctx context.Context) ([]Review, error) {
	t, err := l.readTable(ctx, ReviewsFile)
	if err != nil {
		return nil, err
	}
	reviews := make([]Review, 0, len(t.rows))
	for _, row := range t.rows {
		orderID := t.col(row, "order_id")
		if orderID == "" {
			continue
		}
		score, err := strconv.Atoi(t.col(row, "review_score"))
		if err != nil {
			l.logger.WarnContext(ctx, "dropping review row with bad score",
				slog.String("order_id", orderID),
				slog.String("score", t.col(row, "review_score")))
			continue
		}
		reviews = append(reviews, Review{OrderID: orderID, Score: score})
	}
	return reviews, nil
}

func (l *Loader) loadPayments(ctx context.Context) ([]Payment, error) {
	t, err := l.readTable(ctx, PaymentsFile)
	if err != nil {
		// Payments feed no metric; a missing file is tolerated.
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.WarnContext(ctx, "payments dataset missing, continuing without it")
			return nil, nil
		}
		return nil, err
	}
	payments := make([]Payment, 0, len(t.rows))
	for _, row := range t.rows {
		orderID := t.col(row, "order_id")
		if orderID == "" {
			continue
		}
		value, err := decimal.NewFromString(t.col(row, "payment_value"))
		if err != nil {
			continue
		}
		payments = append(payments, Payment{
			OrderID: orderID,
			Type:    t.col(row, "payment_type"),
			Value:   value,
		})
	}
	return payments, nil
}
