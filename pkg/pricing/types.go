package pricing

import (
	"sync"
)

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceDefault indicates pricing data came from hardcoded defaults
	PricingSourceDefault PricingSource = "Default"

	// PricingSourceNA indicates pricing data is not available
	PricingSourceNA PricingSource = "N/A"
)

// Stats tracking for pricing API calls
var (
	// PricingAPIStats tracks API call statistics by service and region
	PricingAPIStats = make(map[string]map[string]map[string]int) // service -> region -> {success, failure, cache}

	// PricingAPIStatsLock protects the stats map from concurrent access
	PricingAPIStatsLock sync.RWMutex
)

// EBS cache
var (
	// EBSPricingCache caches EBS price per GB-month keyed by "ebs:<type>:<region>"
	EBSPricingCache = make(map[string]float64)

	// EBSPricingCacheLock protects the EBS cache from concurrent access
	EBSPricingCacheLock sync.RWMutex
)

// DefaultEBSPrices are fallback USD per GB-month prices used when the Pricing API fails
var DefaultEBSPrices = map[string]map[string]float64{
	"us-east-1": {
		"gp2":      0.10,
		"gp3":      0.08,
		"io1":      0.125,
		"io2":      0.125,
		"st1":      0.045,
		"sc1":      0.015,
		"standard": 0.05,
	},
	"eu-west-1": {
		"gp2":      0.11,
		"gp3":      0.088,
		"io1":      0.138,
		"io2":      0.138,
		"st1":      0.05,
		"sc1":      0.0168,
		"standard": 0.055,
	},
	"ap-northeast-2": {
		"gp2":      0.114,
		"gp3":      0.0912,
		"io1":      0.142,
		"io2":      0.142,
		"st1":      0.051,
		"sc1":      0.029,
		"standard": 0.057,
	},
}
