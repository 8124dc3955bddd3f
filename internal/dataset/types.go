package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusDelivered is the only order status retained for downstream metrics.
const StatusDelivered = "delivered"

// RawOrder is an order row exactly as read from the orders table, with
// timestamp columns still in their string form.
type RawOrder struct {
	ID          string
	CustomerID  string
	Status      string
	PurchasedAt string
	ApprovedAt  string
	CarrierAt   string
	DeliveredAt string
	EstimatedAt string
}

// Order is an order row after date normalization. Timestamp fields are nil
// when the source value was empty or unparseable.
type Order struct {
	ID          string
	CustomerID  string
	Status      string
	PurchasedAt *time.Time
	ApprovedAt  *time.Time
	CarrierAt   *time.Time
	DeliveredAt *time.Time
	EstimatedAt *time.Time
}

// OrderItem is a single line item within an order. An order's value is the
// sum of its items' prices.
type OrderItem struct {
	OrderID   string
	ItemSeq   int
	ProductID string
	Price     decimal.Decimal
}

// Product is a catalog entry. Category may be empty, in which case the
// product's items never appear in category aggregates.
type Product struct {
	ID       string
	Category string
}

// Customer holds the customer attributes used by geographic metrics.
type Customer struct {
	ID    string
	State string
}

// Review is a single review row. Score is on the 1-5 scale.
type Review struct {
	OrderID string
	Score   int
}

// Payment is a payment row. The payments table ships with the datasets and is
// loaded alongside them, but no metric consumes it.
type Payment struct {
	OrderID string
	Type    string
	Value   decimal.Decimal
}

// SaleRecord is the canonical item-grain row all metric functions consume:
// one row per (order, item) pair, enriched after the delivered filter with
// purchase year/month and delivery latency.
type SaleRecord struct {
	OrderID     string
	ItemSeq     int
	ProductID   string
	Price       decimal.Decimal
	Status      string
	PurchasedAt *time.Time
	DeliveredAt *time.Time

	// Year and Month are derived from PurchasedAt by FilterDelivered.
	// Both are zero when the purchase timestamp is nil.
	Year  int
	Month int

	// DeliveryDays is the whole-day difference between delivery and
	// purchase, set by AddDeliveryLatency. Nil when either timestamp is
	// nil. Only meaningful for delivered rows.
	DeliveryDays *int
}

// Tables holds the raw tabular sources for one session, loaded once and
// treated as immutable afterwards.
type Tables struct {
	Orders    []RawOrder
	Items     []OrderItem
	Products  []Product
	Customers []Customer
	Reviews   []Review
	Payments  []Payment
}
