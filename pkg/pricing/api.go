package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/sirupsen/logrus"
)

// pricingRegion is where the AWS Pricing API is served (us-east-1 and ap-south-1 only)
const pricingRegion = "us-east-1"

// API is the subset of the Pricing client used for price lookups
type API interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

var (
	// PricingClient is the AWS Pricing API client, nil when unavailable
	PricingClient API

	// PricingInitOnce ensures the client is initialized only once
	PricingInitOnce sync.Once
)

// InitPricingClient initializes the AWS pricing client
func InitPricingClient() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(pricingRegion))
	if err != nil {
		logrus.WithError(err).Warn("Cannot load AWS config for the pricing API, using fallback prices")
		return
	}

	PricingClient = pricing.NewFromConfig(cfg)
	logrus.WithField("region", pricingRegion).Debug("AWS Pricing API initialized")
}

// SetClient replaces the pricing client and marks it initialized
func SetClient(api API) {
	PricingInitOnce.Do(func() {})
	PricingClient = api
}

// GetPricingProducts gets up to 100 pricing products matching filters
func GetPricingProducts(ctx context.Context, serviceCode string, filters []types.Filter, resourceType, region string) ([]string, error) {
	PricingInitOnce.Do(InitPricingClient)

	if PricingClient == nil {
		return nil, fmt.Errorf("AWS pricing client not initialized")
	}

	input := &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(100),
	}

	resp, err := PricingClient.GetProducts(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error calling AWS Pricing API: %w", err)
	}

	if len(resp.PriceList) == 0 {
		return nil, fmt.Errorf("no pricing found for %s in region %s", resourceType, region)
	}

	return resp.PriceList, nil
}
