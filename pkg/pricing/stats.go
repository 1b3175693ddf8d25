package pricing

import "sort"

// CallStats counts price lookups of one service in one region
type CallStats struct {
	Service   string
	Region    string
	Success   int
	Failure   int
	CacheHits int
}

// Calls is the number of lookups that reached the API or its fallback
func (s CallStats) Calls() int {
	return s.Success + s.Failure
}

// SuccessRate is the percentage of API lookups that succeeded
func (s CallStats) SuccessRate() float64 {
	if s.Calls() == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Calls()) * 100.0
}

// Snapshot returns the lookup statistics sorted by service then region
func Snapshot() []CallStats {
	PricingAPIStatsLock.RLock()
	defer PricingAPIStatsLock.RUnlock()

	var out []CallStats
	for service, regions := range PricingAPIStats {
		for region, counts := range regions {
			out = append(out, CallStats{
				Service:   service,
				Region:    region,
				Success:   counts["success"],
				Failure:   counts["failure"],
				CacheHits: counts["cache"],
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].Region < out[j].Region
	})
	return out
}

// ResetStats clears the lookup statistics and the price cache
func ResetStats() {
	PricingAPIStatsLock.Lock()
	PricingAPIStats = make(map[string]map[string]map[string]int)
	PricingAPIStatsLock.Unlock()

	EBSPricingCacheLock.Lock()
	EBSPricingCache = make(map[string]float64)
	EBSPricingCacheLock.Unlock()
}
