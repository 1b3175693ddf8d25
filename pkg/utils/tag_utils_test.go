package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
)

func TestTagHelpers(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("Name"), Value: aws.String("scratch")},
		{Key: aws.String("TTL"), Value: aws.String("4")},
		{Key: aws.String("empty"), Value: nil},
		{Key: nil, Value: aws.String("orphan")},
	}

	assert.Equal(t, "scratch", GetName(tags))
	assert.Equal(t, "4", GetTagValue(tags, "TTL"))
	assert.Equal(t, "", GetTagValue(tags, "missing"))
	assert.Equal(t, map[string]string{"Name": "scratch", "TTL": "4", "empty": ""}, GetTagsMap(tags))
	assert.Empty(t, GetTagsMap(nil))

	tag := NewTag("TTL", "6")
	assert.Equal(t, "TTL", aws.ToString(tag.Key))
	assert.Equal(t, "6", aws.ToString(tag.Value))
}

func TestSafeDerefInt32(t *testing.T) {
	assert.Equal(t, 0, SafeDerefInt32(nil))
	assert.Equal(t, 500, SafeDerefInt32(aws.Int32(500)))
}
