package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Data is the prepared session dataset: normalized base tables plus the
// canonical delivered-sales table with delivery latency. It is built once per
// cache key and treated as an immutable snapshot afterwards.
type Data struct {
	Orders    []Order
	Products  []Product
	Customers []Customer
	Reviews   []Review

	// Delivered is the full delivered-sales history, item grain, with
	// year/month and delivery latency populated.
	Delivered []SaleRecord
}

// KeyFunc produces the cache invalidation key. When the key changes between
// calls the store reloads the datasets.
type KeyFunc func() (string, error)

// Store memoizes the loaded and prepared dataset for the duration of a
// session. Invalidation is driven by an injectable key (by default the
// newest modification time among the dataset files); Refresh forces a
// reload regardless of the key.
type Store struct {
	loader *Loader
	keyFn  KeyFunc
	logger *slog.Logger

	mu   sync.Mutex
	key  string
	data *Data
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyFunc overrides the default modification-time invalidation key.
func WithKeyFunc(fn KeyFunc) StoreOption {
	return func(s *Store) { s.keyFn = fn }
}

// NewStore creates a dataset store around the given loader.
func NewStore(loader *Loader, logger *slog.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		loader: loader,
		logger: logger,
	}
	s.keyFn = s.modTimeKey
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Data returns the prepared dataset, loading it on first use and reloading
// it whenever the invalidation key has changed.
func (s *Store) Data(ctx context.Context) (*Data, error) {
	key, err := s.keyFn()
	if err != nil {
		return nil, fmt.Errorf("cache key: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data != nil && s.key == key {
		return s.data, nil
	}

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.key = key
	s.data = data
	return data, nil
}

// Refresh discards the cached dataset and reloads it.
func (s *Store) Refresh(ctx context.Context) (*Data, error) {
	key, err := s.keyFn()
	if err != nil {
		return nil, fmt.Errorf("cache key: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.key = key
	s.data = data
	return data, nil
}

func (s *Store) load(ctx context.Context) (*Data, error) {
	start := time.Now()

	tables, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	data := Prepare(tables)

	s.logger.InfoContext(ctx, "dataset prepared",
		slog.Int("delivered_rows", len(data.Delivered)),
		slog.Duration("elapsed", time.Since(start)))

	return data, nil
}

// Prepare runs the full preparation pipeline on raw tables: date
// normalization, the item-to-order join, the delivered filter, and delivery
// latency enrichment.
func Prepare(t *Tables) *Data {
	orders := ParseOrderDates(t.Orders)
	sales := BuildSaleRecords(t.Items, orders)
	delivered := AddDeliveryLatency(FilterDelivered(sales))

	return &Data{
		Orders:    orders,
		Products:  t.Products,
		Customers: t.Customers,
		Reviews:   t.Reviews,
		Delivered: delivered,
	}
}

// modTimeKey is the default invalidation key: the newest modification time
// among the dataset files, so an updated CSV triggers a reload on the next
// access.
func (s *Store) modTimeKey() (string, error) {
	var newest time.Time
	for _, name := range DataFiles {
		info, err := os.Stat(filepath.Join(s.loader.Dir(), name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest.UTC().Format(time.RFC3339Nano), nil
}
