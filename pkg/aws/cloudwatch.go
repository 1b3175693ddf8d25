package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/ebsreaper/pkg/lifecycle"
)

// CloudWatchAPI is the subset of the CloudWatch client used to publish run metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsPublisher publishes lifecycle run metrics to CloudWatch
type MetricsPublisher struct {
	client    CloudWatchAPI
	namespace string
}

// NewMetricsPublisher creates a MetricsPublisher writing to namespace
func NewMetricsPublisher(cfg aws.Config, namespace string) *MetricsPublisher {
	return NewMetricsPublisherWithAPI(cloudwatch.NewFromConfig(cfg), namespace)
}

// NewMetricsPublisherWithAPI creates a MetricsPublisher over any CloudWatchAPI implementation
func NewMetricsPublisherWithAPI(api CloudWatchAPI, namespace string) *MetricsPublisher {
	return &MetricsPublisher{client: api, namespace: namespace}
}

// Publish sends one datum per counter, dimensioned by account
func (p *MetricsPublisher) Publish(ctx context.Context, account string, m lifecycle.RunMetrics) error {
	dimensions := []cwTypes.Dimension{
		{Name: aws.String("Account"), Value: aws.String(account)},
	}

	datum := func(name string, value int, unit cwTypes.StandardUnit) cwTypes.MetricDatum {
		return cwTypes.MetricDatum{
			MetricName: aws.String(name),
			Value:      aws.Float64(float64(value)),
			Unit:       unit,
			Dimensions: dimensions,
		}
	}

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []cwTypes.MetricDatum{
			datum("TrackedVolumes", m.TrackedVolumes, cwTypes.StandardUnitCount),
			datum("ZeroTTLVolumes", m.ZeroTTLVolumes, cwTypes.StandardUnitCount),
			datum("DeletedVolumes", m.DeletedVolumes, cwTypes.StandardUnitCount),
			datum("TrackedGiB", m.TrackedGiB, cwTypes.StandardUnitGigabytes),
		},
	})
	if err != nil {
		return fmt.Errorf("error publishing metrics to %s: %w", p.namespace, err)
	}
	return nil
}
