package cache

import "fmt"

// FailurePolicy decides what happens to a lookup whose tool was unavailable.
type FailurePolicy string

const (
	// RetryUnavailable leaves the key uncached so the next request retries.
	RetryUnavailable FailurePolicy = "retry"
	// CacheUnavailable records the miss and answers it for the rest of the run.
	CacheUnavailable FailurePolicy = "cache"
)

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "", RetryUnavailable:
		return RetryUnavailable, nil
	case CacheUnavailable:
		return CacheUnavailable, nil
	default:
		return "", fmt.Errorf("unknown peer failure policy %q (want %q or %q)", s, RetryUnavailable, CacheUnavailable)
	}
}

type CacheMetrics struct {
	Hits         int64   `json:"hits"`
	Misses       int64   `json:"misses"`
	Unavailable  int64   `json:"unavailable"`
	TotalEntries int     `json:"total_entries"`
	HitRate      float64 `json:"hit_rate"`
}

func (m *CacheMetrics) CalculateHitRate() {
	total := m.Hits + m.Misses
	if total > 0 {
		m.HitRate = float64(m.Hits) / float64(total) * 100
	} else {
		m.HitRate = 0
	}
}
