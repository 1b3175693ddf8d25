package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/sirupsen/logrus"
)

// EBSEstimator prices EBS volumes per month
type EBSEstimator struct{}

// MonthlyCost returns the monthly cost of a volume and the pricing source
func (EBSEstimator) MonthlyCost(volumeType string, sizeGB int, region string) (float64, string) {
	return CalculateEBSMonthlyCostWithSource(volumeType, sizeGB, region)
}

func ebsCacheKey(volumeType, region string) string {
	return fmt.Sprintf("ebs:%s:%s", volumeType, region)
}

// getEBSPriceFromAPI retrieves EBS volume pricing from the AWS Pricing API
func getEBSPriceFromAPI(volumeType, region string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("volumeType"),
			Value: aws.String(mapVolumeTypeToAPIValue(volumeType)),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("location"),
			Value: aws.String(GetRegionDescriptiveName(region)),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("productFamily"),
			Value: aws.String("Storage"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("regionCode"),
			Value: aws.String(region),
		},
	}

	products, err := GetPricingProducts(ctx, "AmazonEC2", filters, volumeType, region)
	if err != nil {
		return 0, err
	}

	// Several volume types share one volumeType family, match the API name exactly
	for _, product := range products {
		var priceData struct {
			Product struct {
				Attributes map[string]string `json:"attributes"`
			} `json:"product"`
		}
		if err := json.Unmarshal([]byte(product), &priceData); err != nil {
			continue
		}
		if priceData.Product.Attributes["volumeApiName"] == volumeType {
			return extractEBSPrice(product)
		}
	}

	return 0, fmt.Errorf("no exact match found for EBS volume type %s in region %s", volumeType, region)
}

// mapVolumeTypeToAPIValue maps EBS volume types to their API filter values
func mapVolumeTypeToAPIValue(volumeType string) string {
	switch volumeType {
	case "gp2", "gp3":
		return "General Purpose"
	case "io1", "io2":
		return "Provisioned IOPS"
	case "st1":
		return "Throughput Optimized HDD"
	case "sc1":
		return "Cold HDD"
	case "standard":
		return "Magnetic"
	default:
		return "General Purpose"
	}
}

type priceDimension struct {
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

type priceProduct struct {
	Terms struct {
		OnDemand map[string]struct {
			PriceDimensions map[string]priceDimension `json:"priceDimensions"`
		} `json:"OnDemand"`
	} `json:"terms"`
}

// extractEBSPrice extracts the USD price per GB-month from one price list entry
func extractEBSPrice(product string) (float64, error) {
	var data priceProduct
	if err := json.Unmarshal([]byte(product), &data); err != nil {
		return 0, fmt.Errorf("error parsing pricing data: %w", err)
	}

	for _, offer := range data.Terms.OnDemand {
		for _, dimension := range offer.PriceDimensions {
			if dimension.Unit != "GB-Mo" && dimension.Unit != "GB-month" {
				return 0, fmt.Errorf("unexpected pricing unit: %s", dimension.Unit)
			}
			usd, ok := dimension.PricePerUnit["USD"]
			if !ok {
				return 0, fmt.Errorf("USD price not found")
			}
			price, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return 0, fmt.Errorf("error parsing price: %w", err)
			}
			return price, nil
		}
	}

	return 0, fmt.Errorf("no on-demand price dimension found")
}

// fallbackEBSPrice returns the hardcoded price of volumeType, defaulting to gp2 and us-east-1
func fallbackEBSPrice(volumeType, region string) (float64, bool) {
	regionPrices, found := DefaultEBSPrices[region]
	if !found {
		regionPrices = DefaultEBSPrices["us-east-1"]
	}
	if price, found := regionPrices[volumeType]; found {
		return price, true
	}
	if price, found := regionPrices["gp2"]; found {
		return price, true
	}
	return 0, false
}

// CalculateEBSMonthlyCostWithSource calculates the monthly cost of an EBS volume and returns the pricing source
func CalculateEBSMonthlyCostWithSource(volumeType string, sizeGB int, region string) (float64, string) {
	PricingInitOnce.Do(InitPricingClient)

	cacheKey := ebsCacheKey(volumeType, region)

	EBSPricingCacheLock.RLock()
	if price, found := EBSPricingCache[cacheKey]; found {
		EBSPricingCacheLock.RUnlock()
		UpdateCacheHitStats("EBS", region)
		return float64(sizeGB) * price, string(PricingSourceCache)
	}
	EBSPricingCacheLock.RUnlock()

	if PricingClient != nil {
		price, err := getEBSPriceFromAPI(volumeType, region)
		if err == nil {
			UpdateAPISuccessStats("EBS", region)

			EBSPricingCacheLock.Lock()
			EBSPricingCache[cacheKey] = price
			EBSPricingCacheLock.Unlock()

			return float64(sizeGB) * price, string(PricingSourceAPI)
		}

		logrus.WithError(err).WithFields(logrus.Fields{
			"volume_type": volumeType,
			"region":      region,
		}).Warn("Error getting EBS price from API, using fallback pricing")
	}

	UpdateAPIFailureStats("EBS", region)

	if price, ok := fallbackEBSPrice(volumeType, region); ok {
		return float64(sizeGB) * price, string(PricingSourceDefault)
	}
	return 0, string(PricingSourceNA)
}
