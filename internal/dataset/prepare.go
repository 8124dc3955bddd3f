package dataset

import (
	"math"
	"time"
)

// timestampLayouts are the layouts accepted for raw timestamp strings, tried
// in order. The source data uses "2006-01-02 15:04:05" throughout; the other
// layouts cover exported variants of the same datasets.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a raw timestamp string. Empty or unparseable values
// yield nil rather than an error; downstream computations propagate the nil.
func ParseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseOrderDates converts the date-like string columns of raw orders into
// typed timestamps. The input is not modified.
func ParseOrderDates(raw []RawOrder) []Order {
	orders := make([]Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, Order{
			ID:          r.ID,
			CustomerID:  r.CustomerID,
			Status:      r.Status,
			PurchasedAt: ParseTimestamp(r.PurchasedAt),
			ApprovedAt:  ParseTimestamp(r.ApprovedAt),
			CarrierAt:   ParseTimestamp(r.CarrierAt),
			DeliveredAt: ParseTimestamp(r.DeliveredAt),
			EstimatedAt: ParseTimestamp(r.EstimatedAt),
		})
	}
	return orders
}

// BuildSaleRecords inner-joins order items to orders on order id, keeping
// only the fields needed downstream. Items referencing unknown orders, and
// orders with no items, are silently dropped.
func BuildSaleRecords(items []OrderItem, orders []Order) []SaleRecord {
	byID := make(map[string]Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	sales := make([]SaleRecord, 0, len(items))
	for _, it := range items {
		o, ok := byID[it.OrderID]
		if !ok {
			continue
		}
		sales = append(sales, SaleRecord{
			OrderID:     it.OrderID,
			ItemSeq:     it.ItemSeq,
			ProductID:   it.ProductID,
			Price:       it.Price,
			Status:      o.Status,
			PurchasedAt: o.PurchasedAt,
			DeliveredAt: o.DeliveredAt,
		})
	}
	return sales
}

// FilterDelivered returns the rows with status "delivered", with purchase
// year and month derived on each kept row. Rows whose purchase timestamp is
// nil keep zero year/month; that is data shape, not an error.
func FilterDelivered(sales []SaleRecord) []SaleRecord {
	delivered := make([]SaleRecord, 0, len(sales))
	for _, s := range sales {
		if s.Status != StatusDelivered {
			continue
		}
		if s.PurchasedAt != nil {
			s.Year = s.PurchasedAt.Year()
			s.Month = int(s.PurchasedAt.Month())
		}
		delivered = append(delivered, s)
	}
	return delivered
}

// FilterByYear returns the delivered-sales rows whose purchase year equals
// the given year.
func FilterByYear(sales []SaleRecord, year int) []SaleRecord {
	out := make([]SaleRecord, 0, len(sales))
	for _, s := range sales {
		if s.Year == year {
			out = append(out, s)
		}
	}
	return out
}

// FilterByDateRange returns the rows whose purchase timestamp falls within
// the inclusive calendar-date range [start, end]. Both bounds widen to whole
// days, so a row at any time-of-day on the end date is included. Rows with a
// nil purchase timestamp are excluded. An empty result is valid.
func FilterByDateRange(sales []SaleRecord, start, end time.Time) []SaleRecord {
	lo := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	hi := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)

	out := make([]SaleRecord, 0, len(sales))
	for _, s := range sales {
		if s.PurchasedAt == nil {
			continue
		}
		p := *s.PurchasedAt
		if !p.Before(lo) && p.Before(hi) {
			out = append(out, s)
		}
	}
	return out
}

// AddDeliveryLatency sets DeliveryDays on each row as the whole-day
// difference between delivery and purchase timestamps (floored, so a
// delivery 5.9 days after purchase counts as 5). Rows missing either
// timestamp keep a nil latency.
func AddDeliveryLatency(sales []SaleRecord) []SaleRecord {
	out := make([]SaleRecord, 0, len(sales))
	for _, s := range sales {
		if s.PurchasedAt != nil && s.DeliveredAt != nil {
			days := int(math.Floor(s.DeliveredAt.Sub(*s.PurchasedAt).Hours() / 24))
			s.DeliveryDays = &days
		}
		out = append(out, s)
	}
	return out
}

// PurchaseBounds returns the earliest and latest purchase timestamps across
// the rows. ok is false when no row carries a purchase timestamp.
func PurchaseBounds(sales []SaleRecord) (min, max time.Time, ok bool) {
	for _, s := range sales {
		if s.PurchasedAt == nil {
			continue
		}
		p := *s.PurchasedAt
		if !ok {
			min, max, ok = p, p, true
			continue
		}
		if p.Before(min) {
			min = p
		}
		if p.After(max) {
			max = p
		}
	}
	return min, max, ok
}
