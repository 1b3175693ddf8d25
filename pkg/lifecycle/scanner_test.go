package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTTL(t *testing.T) {
	assert.Equal(t, 4, NextTTL(6, 2))
	assert.Equal(t, 0, NextTTL(2, 2))
	assert.Equal(t, 0, NextTTL(1, 2), "never below zero")
	assert.Equal(t, 0, NextTTL(0, 2))
	assert.Equal(t, 0, NextTTL(-3, 2))
}

func TestScanner_Scan(t *testing.T) {
	provider := newFakeProvider(
		volume("vol-new", 8, nil),
		volume("vol-other-tags", 10, map[string]string{"Name": "scratch"}),
		volume("vol-counting", 20, map[string]string{"TTL": "5"}),
		volume("vol-almost", 30, map[string]string{"TTL": "1"}),
		volume("vol-zero", 40, map[string]string{"TTL": "0"}),
		volume("vol-negative", 50, map[string]string{"TTL": "-2"}),
	)
	scanner := NewScanner(provider, "TTL", 6, 2, nil)

	records, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 6)

	ttls := map[string]string{}
	var order []string
	for _, r := range records {
		ttls[r.ID] = r.TTL
		order = append(order, r.ID)
	}

	assert.Equal(t, []string{"vol-new", "vol-other-tags", "vol-counting", "vol-almost", "vol-zero", "vol-negative"}, order)
	assert.Equal(t, "6", ttls["vol-new"])
	assert.Equal(t, "6", ttls["vol-other-tags"])
	assert.Equal(t, "3", ttls["vol-counting"])
	assert.Equal(t, "0", ttls["vol-almost"])
	assert.Equal(t, "0", ttls["vol-zero"])
	assert.Equal(t, "0", ttls["vol-negative"])

	// Volumes already at zero are not re-tagged
	assert.Equal(t, []string{"vol-new=6", "vol-other-tags=6", "vol-counting=3", "vol-almost=0"}, provider.tagWrites)
}

func TestScanner_ZeroStaysZero(t *testing.T) {
	provider := newFakeProvider(volume("vol-1", 8, map[string]string{"TTL": "2"}))
	scanner := NewScanner(provider, "TTL", 6, 2, nil)

	for i := 0; i < 3; i++ {
		records, err := scanner.Scan(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "0", records[0].TTL)
	}
	assert.Equal(t, []string{"vol-1=0"}, provider.tagWrites)
}

func TestScanner_CustomTagKey(t *testing.T) {
	provider := newFakeProvider(volume("vol-1", 8, map[string]string{"TTL": "garbage"}))
	scanner := NewScanner(provider, "ebsreaper/ttl", 4, 1, nil)

	records, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4", records[0].TTL)
	assert.Equal(t, "4", provider.volumes[0].Tags["ebsreaper/ttl"])
}

func TestScanner_NonNumericTTLFails(t *testing.T) {
	provider := newFakeProvider(volume("vol-1", 8, map[string]string{"TTL": "keep"}))
	scanner := NewScanner(provider, "TTL", 6, 2, nil)

	_, err := scanner.Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vol-1")
}

func TestScanner_TagFailureAborts(t *testing.T) {
	provider := newFakeProvider(
		volume("vol-1", 8, nil),
		volume("vol-2", 8, nil),
		volume("vol-3", 8, nil),
	)
	provider.failTag = "vol-2"
	scanner := NewScanner(provider, "TTL", 6, 2, nil)

	_, err := scanner.Scan(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"vol-1=6"}, provider.tagWrites)
}

func TestScanner_ListFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.listErr = errBoom
	scanner := NewScanner(provider, "TTL", 6, 2, nil)

	_, err := scanner.Scan(context.Background())
	assert.ErrorIs(t, err, errBoom)
}
