package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/ebsreaper/internal/models"
	"github.com/younsl/ebsreaper/pkg/utils"
)

// EC2API is the subset of the EC2 client used for volume lifecycle management
type EC2API interface {
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	DeleteVolume(ctx context.Context, params *ec2.DeleteVolumeInput, optFns ...func(*ec2.Options)) (*ec2.DeleteVolumeOutput, error)
}

// EBSClient struct for EBS client
type EBSClient struct {
	client EC2API
	region string
}

// NewEBSClient creates a new EBSClient from a loaded AWS config
func NewEBSClient(cfg aws.Config) *EBSClient {
	return NewEBSClientWithAPI(ec2.NewFromConfig(cfg), cfg.Region)
}

// NewEBSClientWithAPI creates an EBSClient over any EC2API implementation
func NewEBSClientWithAPI(api EC2API, region string) *EBSClient {
	return &EBSClient{
		client: api,
		region: region,
	}
}

// ListAvailableVolumes returns every EBS volume in Available state, following all pages
func (c *EBSClient) ListAvailableVolumes(ctx context.Context) ([]models.ListedVolume, error) {
	// Filter only volumes in 'available' state (unattached volumes)
	input := &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("status"),
				Values: []string{string(types.VolumeStateAvailable)},
			},
		},
	}

	volumes := []models.ListedVolume{}
	paginator := ec2.NewDescribeVolumesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EBS volumes in %s: %w", c.region, err)
		}

		for _, volume := range page.Volumes {
			volumes = append(volumes, c.toListedVolume(volume))
		}
	}

	return volumes, nil
}

func (c *EBSClient) toListedVolume(volume types.Volume) models.ListedVolume {
	record := models.VolumeRecord{
		ID:               aws.ToString(volume.VolumeId),
		Name:             utils.GetName(volume.Tags),
		Status:           string(volume.State),
		Size:             utils.SafeDerefInt32(volume.Size),
		VolumeType:       string(volume.VolumeType),
		Region:           c.region,
		AvailabilityZone: aws.ToString(volume.AvailabilityZone),
		CreationTime:     aws.ToTime(volume.CreateTime),
	}
	return models.ListedVolume{
		VolumeRecord: record,
		Tags:         utils.GetTagsMap(volume.Tags),
	}
}

// SetTag creates or overwrites a single tag on a volume
func (c *EBSClient) SetTag(ctx context.Context, volumeID, key, value string) error {
	_, err := c.client.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{volumeID},
		Tags:      []types.Tag{utils.NewTag(key, value)},
	})
	if err != nil {
		return fmt.Errorf("error tagging %s with %s=%s: %w", volumeID, key, value, err)
	}
	return nil
}

// DeleteVolume deletes a volume
func (c *EBSClient) DeleteVolume(ctx context.Context, volumeID string) error {
	_, err := c.client.DeleteVolume(ctx, &ec2.DeleteVolumeInput{
		VolumeId: aws.String(volumeID),
	})
	if err != nil {
		return fmt.Errorf("error deleting EBS volume %s: %w", volumeID, err)
	}
	return nil
}
