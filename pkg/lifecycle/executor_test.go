package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/ebsreaper/internal/models"
)

func records(pairs ...string) []models.VolumeRecord {
	var out []models.VolumeRecord
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.VolumeRecord{ID: pairs[i], Status: "available", Size: 8, TTL: pairs[i+1]})
	}
	return out
}

func TestExecutor_DeletesOnlyExpired(t *testing.T) {
	provider := newFakeProvider()
	executor := NewExecutor(provider, nil)

	deleted, report, err := executor.Execute(context.Background(), records("vol-1", "0", "vol-2", "2", "vol-3", "0"), "123456789012", date("2025-01-07"))
	require.NoError(t, err)

	assert.Equal(t, []string{"vol-1", "vol-3"}, deleted)
	assert.Equal(t, []string{"vol-1", "vol-3"}, provider.deleted)
	assert.Equal(t,
		"UNTAGGED EBS VOLUME IN ACCOUNT 123456789012 WITH ID vol-1, STATUS available, SIZE 8 WAS DELETED ON 2025-01-07.\n"+
			"UNTAGGED EBS VOLUME IN ACCOUNT 123456789012 WITH ID vol-3, STATUS available, SIZE 8 WAS DELETED ON 2025-01-07.\n",
		report)
}

func TestExecutor_NothingExpired(t *testing.T) {
	provider := newFakeProvider()
	executor := NewExecutor(provider, nil)

	deleted, report, err := executor.Execute(context.Background(), records("vol-1", "4"), "123456789012", date("2025-01-07"))
	require.NoError(t, err)
	assert.Empty(t, deleted)
	assert.Equal(t, NothingDeletedReport, report)
	assert.Empty(t, provider.deleted)
}

func TestExecutor_FailureAbortsBatch(t *testing.T) {
	provider := newFakeProvider()
	provider.failDel = "vol-2"
	executor := NewExecutor(provider, nil)

	deleted, report, err := executor.Execute(context.Background(), records("vol-1", "0", "vol-2", "0", "vol-3", "0"), "123456789012", date("2025-01-07"))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"vol-1"}, deleted)
	assert.Equal(t, []string{"vol-1"}, provider.deleted)
	assert.Contains(t, report, "vol-1")
	assert.NotContains(t, report, "vol-3")
}
