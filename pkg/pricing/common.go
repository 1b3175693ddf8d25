package pricing

import (
	"github.com/younsl/ebsreaper/pkg/utils"
)

// UpdateCacheHitStats updates stats when a cache hit occurs
func UpdateCacheHitStats(service, region string) {
	updatePricingAPIStats(service, region, "cache")
}

// UpdateAPISuccessStats updates stats when an API call succeeds
func UpdateAPISuccessStats(service, region string) {
	updatePricingAPIStats(service, region, "success")
}

// UpdateAPIFailureStats updates stats when an API call fails
func UpdateAPIFailureStats(service, region string) {
	updatePricingAPIStats(service, region, "failure")
}

func updatePricingAPIStats(service, region, statType string) {
	PricingAPIStatsLock.Lock()
	defer PricingAPIStatsLock.Unlock()

	if _, exists := PricingAPIStats[service]; !exists {
		PricingAPIStats[service] = make(map[string]map[string]int)
	}
	if _, exists := PricingAPIStats[service][region]; !exists {
		PricingAPIStats[service][region] = map[string]int{
			"success": 0,
			"failure": 0,
			"cache":   0,
		}
	}

	PricingAPIStats[service][region][statType]++
}

// GetRegionDescriptiveName returns the location name the Pricing API uses for region
func GetRegionDescriptiveName(region string) string {
	return utils.PricingLocation(region)
}
