package metrics

import (
	"sort"

	"shoppulse/internal/dataset"
)

// StatusShare is the normalized frequency of one order status.
type StatusShare struct {
	Status string  `json:"status"`
	Share  float64 `json:"share"`
}

// OrderStatusDistribution returns the sum-to-one frequency of each status
// among orders purchased in the given year. Orders whose purchase timestamp
// failed to parse never match a year. An empty subset yields an empty slice.
// Output is sorted by descending share, then status.
func OrderStatusDistribution(orders []dataset.Order, year int) []StatusShare {
	counts := make(map[string]int)
	total := 0
	for _, o := range orders {
		if o.PurchasedAt == nil || o.PurchasedAt.Year() != year {
			continue
		}
		counts[o.Status]++
		total++
	}
	if total == 0 {
		return nil
	}

	out := make([]StatusShare, 0, len(counts))
	for status, n := range counts {
		out = append(out, StatusShare{Status: status, Share: float64(n) / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Share != out[j].Share {
			return out[i].Share > out[j].Share
		}
		return out[i].Status < out[j].Status
	})
	return out
}
