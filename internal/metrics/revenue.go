package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"shoppulse/internal/dataset"
)

// TotalRevenue sums item prices across the rows. Empty input yields zero.
func TotalRevenue(rows []dataset.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Price)
	}
	return total
}

// RevenueGrowth is the fractional revenue change from the previous period to
// the current one. Undefined when previous-period revenue is exactly zero.
func RevenueGrowth(current, previous []dataset.SaleRecord) Ratio {
	return growth(TotalRevenue(current).InexactFloat64(), TotalRevenue(previous).InexactFloat64())
}

// MonthRevenue is one (year, month) revenue group.
type MonthRevenue struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthlyRevenue groups revenue by (year, month). Groups are exhaustive and
// unique, sorted chronologically.
func MonthlyRevenue(rows []dataset.SaleRecord) []MonthRevenue {
	type key struct{ year, month int }
	sums := make(map[key]decimal.Decimal)
	for _, r := range rows {
		k := key{r.Year, r.Month}
		sums[k] = sums[k].Add(r.Price)
	}

	out := make([]MonthRevenue, 0, len(sums))
	for k, v := range sums {
		out = append(out, MonthRevenue{Year: k.year, Month: k.month, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// MonthGrowth is the fractional revenue change from the previous observed
// month to this one.
type MonthGrowth struct {
	Month  int   `json:"month"`
	Growth Ratio `json:"growth"`
}

// MonthOverMonthGrowth groups revenue by calendar month alone (mixing years
// in one bucket is deliberate: the buckets feed the seasonal average below)
// and returns the fractional change between consecutive observed months in
// natural 1..12 order. The first observed month has no predecessor and is
// undefined.
func MonthOverMonthGrowth(rows []dataset.SaleRecord) []MonthGrowth {
	sums := make(map[int]decimal.Decimal)
	for _, r := range rows {
		sums[r.Month] = sums[r.Month].Add(r.Price)
	}

	months := make([]int, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Ints(months)

	out := make([]MonthGrowth, 0, len(months))
	for i, m := range months {
		if i == 0 {
			out = append(out, MonthGrowth{Month: m, Growth: UndefinedRatio()})
			continue
		}
		prev := sums[months[i-1]].InexactFloat64()
		out = append(out, MonthGrowth{Month: m, Growth: growth(sums[m].InexactFloat64(), prev)})
	}
	return out
}

// AverageMoMGrowth is the mean of the defined month-over-month growth values.
// Undefined entries (the first month, or a zero-revenue predecessor) are
// skipped, not zero-filled. Undefined when no defined value exists.
func AverageMoMGrowth(rows []dataset.SaleRecord) Ratio {
	var sum float64
	var n int
	for _, g := range MonthOverMonthGrowth(rows) {
		if g.Growth.Valid() {
			sum += g.Growth.Value()
			n++
		}
	}
	if n == 0 {
		return UndefinedRatio()
	}
	return NewRatio(sum / float64(n))
}
