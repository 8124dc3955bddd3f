package metrics

import (
	"sort"

	"shoppulse/internal/dataset"
)

// Bucket is one of the three fixed delivery-speed categories.
type Bucket string

const (
	BucketFast     Bucket = "1-3 days"
	BucketModerate Bucket = "4-7 days"
	BucketSlow     Bucket = "8+ days"
)

// Buckets returns the buckets in display order, fastest first.
func Buckets() []Bucket {
	return []Bucket{BucketFast, BucketModerate, BucketSlow}
}

// CategorizeDeliverySpeed maps a whole-day delivery latency to its bucket.
// Boundaries are inclusive on the low end: 3 days is still "1-3 days" and
// 7 days is still "4-7 days". Negative day counts fall into "1-3 days" by
// the same inequality; ReviewDeliverySummary counts them as a data-quality
// signal rather than reclassifying.
func CategorizeDeliverySpeed(days int) Bucket {
	switch {
	case days <= 3:
		return BucketFast
	case days <= 7:
		return BucketModerate
	default:
		return BucketSlow
	}
}

// SummaryRow is one order-grain row of the review-delivery summary.
type SummaryRow struct {
	OrderID      string `json:"order_id"`
	DeliveryDays int    `json:"delivery_days"`
	ReviewScore  int    `json:"review_score"`
	Bucket       Bucket `json:"bucket"`
}

// SummaryDiagnostics reports data-quality findings from building the
// summary. The rows involved stay in the summary; callers decide whether to
// warn.
type SummaryDiagnostics struct {
	// NegativeDeliveryDays counts rows delivered before purchase.
	NegativeDeliveryDays int
	// DuplicateReviewOrders counts orders carrying more than one distinct
	// review score, each of which contributes its own summary row and
	// skews order-level averages.
	DuplicateReviewOrders int
}

// ReviewDeliverySummary inner-joins delivered sales with reviews on order id
// and collapses the result to order grain: one row per unique (order,
// delivery days, review score) combination, with the delivery bucket added.
// Item-level fields are dropped before de-duplication, so an order's several
// line items yield a single row. Sales rows without delivery latency are
// excluded. An order with several distinct reviews keeps one row per review
// score, matching the source tables; the diagnostics expose the skew.
func ReviewDeliverySummary(sales []dataset.SaleRecord, reviews []dataset.Review) ([]SummaryRow, SummaryDiagnostics) {
	scoresOf := make(map[string][]int, len(reviews))
	for _, r := range reviews {
		scoresOf[r.OrderID] = append(scoresOf[r.OrderID], r.Score)
	}

	type key struct {
		orderID string
		days    int
		score   int
	}
	seen := make(map[key]struct{})
	ordersSeen := make(map[string]int)

	var rows []SummaryRow
	var diag SummaryDiagnostics
	for _, s := range sales {
		if s.DeliveryDays == nil {
			continue
		}
		for _, score := range scoresOf[s.OrderID] {
			k := key{s.OrderID, *s.DeliveryDays, score}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			ordersSeen[s.OrderID]++
			if *s.DeliveryDays < 0 {
				diag.NegativeDeliveryDays++
			}
			rows = append(rows, SummaryRow{
				OrderID:      s.OrderID,
				DeliveryDays: *s.DeliveryDays,
				ReviewScore:  score,
				Bucket:       CategorizeDeliverySpeed(*s.DeliveryDays),
			})
		}
	}
	for _, n := range ordersSeen {
		if n > 1 {
			diag.DuplicateReviewOrders++
		}
	}
	return rows, diag
}

// BucketScore is the mean review score within one delivery bucket.
type BucketScore struct {
	Bucket   Bucket  `json:"bucket"`
	AvgScore float64 `json:"avg_score"`
}

// AvgReviewByDeliveryBucket returns the mean review score per delivery
// bucket, in fixed bucket order. Buckets with no rows are omitted. An empty
// summary yields an empty slice.
func AvgReviewByDeliveryBucket(summary []SummaryRow) []BucketScore {
	sums := make(map[Bucket]int)
	counts := make(map[Bucket]int)
	for _, r := range summary {
		sums[r.Bucket] += r.ReviewScore
		counts[r.Bucket]++
	}

	var out []BucketScore
	for _, b := range Buckets() {
		if counts[b] == 0 {
			continue
		}
		out = append(out, BucketScore{Bucket: b, AvgScore: float64(sums[b]) / float64(counts[b])})
	}
	return out
}

// DayScore is the mean review score for one delivery-day count.
type DayScore struct {
	DeliveryDays int     `json:"delivery_days"`
	AvgScore     float64 `json:"avg_score"`
}

// AvgReviewByDeliveryDay returns the mean review score per delivery-day
// count, ascending by days. An empty summary yields an empty slice.
func AvgReviewByDeliveryDay(summary []SummaryRow) []DayScore {
	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, r := range summary {
		sums[r.DeliveryDays] += r.ReviewScore
		counts[r.DeliveryDays]++
	}

	days := make([]int, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Ints(days)

	out := make([]DayScore, 0, len(days))
	for _, d := range days {
		out = append(out, DayScore{DeliveryDays: d, AvgScore: float64(sums[d]) / float64(counts[d])})
	}
	return out
}

// ScoreShare is the normalized frequency of one review score.
type ScoreShare struct {
	Score int     `json:"score"`
	Share float64 `json:"share"`
}

// ReviewScoreDistribution returns the sum-to-one frequency of each review
// score, ascending by score. An empty summary yields an empty slice.
func ReviewScoreDistribution(summary []SummaryRow) []ScoreShare {
	counts := make(map[int]int)
	for _, r := range summary {
		counts[r.ReviewScore]++
	}
	if len(summary) == 0 {
		return nil
	}

	scores := make([]int, 0, len(counts))
	for s := range counts {
		scores = append(scores, s)
	}
	sort.Ints(scores)

	out := make([]ScoreShare, 0, len(scores))
	for _, s := range scores {
		out = append(out, ScoreShare{Score: s, Share: float64(counts[s]) / float64(len(summary))})
	}
	return out
}

// AverageDeliveryDays is the mean delivery latency across summary rows.
// Returns 0 for an empty summary; callers that need to distinguish "no data"
// should check the summary length.
func AverageDeliveryDays(summary []SummaryRow) float64 {
	if len(summary) == 0 {
		return 0
	}
	sum := 0
	for _, r := range summary {
		sum += r.DeliveryDays
	}
	return float64(sum) / float64(len(summary))
}

// AverageReviewScore is the mean review score across summary rows. Returns 0
// for an empty summary.
func AverageReviewScore(summary []SummaryRow) float64 {
	if len(summary) == 0 {
		return 0
	}
	sum := 0
	for _, r := range summary {
		sum += r.ReviewScore
	}
	return float64(sum) / float64(len(summary))
}
