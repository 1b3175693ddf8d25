package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/younsl/ebsreaper/pkg/utils"
)

// LoadConfig loads the default AWS config for region.
// An empty region is resolved from the environment, then from instance metadata,
// then falls back to utils.DefaultRegion.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}

	if cfg.Region == "" {
		cfg.Region = regionFromIMDS(ctx, cfg)
	}
	return cfg, nil
}

func regionFromIMDS(ctx context.Context, cfg aws.Config) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out, err := imds.NewFromConfig(cfg).GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		return utils.DefaultRegion
	}
	return utils.FirstRegion(out.Region)
}

// AccountFromARN extracts the account id, the fifth field, of an ARN
func AccountFromARN(arn string) (string, error) {
	parts := strings.Split(arn, ":")
	if len(parts) < 6 || parts[0] != "arn" || parts[4] == "" {
		return "", fmt.Errorf("cannot extract account id from ARN %q", arn)
	}
	return parts[4], nil
}

// CallerAccount returns the account id of the current credentials
func CallerAccount(ctx context.Context, cfg aws.Config) (string, error) {
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}
