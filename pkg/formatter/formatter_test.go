package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/younsl/ebsreaper/internal/models"
	"github.com/younsl/ebsreaper/pkg/pricing"
)

func TestTruncateName(t *testing.T) {
	assert.Equal(t, PadString("N/A", MAX_NAME_WIDTH), truncateName(""))
	assert.Equal(t, PadString("scratch", MAX_NAME_WIDTH), truncateName("scratch"))

	long := truncateName("a-very-long-volume-name-for-testing")
	assert.Equal(t, MAX_NAME_WIDTH, StringWidth(long))
	assert.True(t, strings.HasSuffix(long, ".."))

	korean := truncateName("데이터베이스백업볼륨임시저장소")
	assert.LessOrEqual(t, StringWidth(korean), MAX_NAME_WIDTH)
	assert.True(t, strings.HasSuffix(strings.TrimRight(korean, " "), ".."))
}

func TestPadString(t *testing.T) {
	assert.Equal(t, "ab   ", PadString("ab", 5))
	assert.Equal(t, "abcdef", PadString("abcdef", 3))
	assert.Equal(t, "한글 ", PadString("한글", 5))
	assert.Equal(t, 4, StringWidth("한글"))
}

func TestPrintVolumesTable(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	rows := []VolumeRow{
		{
			VolumeRecord: models.VolumeRecord{
				ID: "vol-1", Name: "scratch", Size: 100, VolumeType: "gp3",
				CreationTime: now.Add(-72 * time.Hour), EstimatedMonthlyCost: 8, PricingSource: "API",
			},
			TTLTag: "4",
		},
		{
			VolumeRecord: models.VolumeRecord{ID: "vol-2", Size: 8, VolumeType: "gp2"},
		},
	}

	var buf bytes.Buffer
	PrintVolumesTable(&buf, rows, now)
	out := buf.String()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "vol-1")
	assert.Contains(t, out, "100 GiB")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "$8.00")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "untracked")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "2 volumes")
	assert.Contains(t, out, "108 GiB")
}

func TestPrintVolumesTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintVolumesTable(&buf, nil, time.Now())
	assert.Equal(t, "No available EBS volumes found.\n", buf.String())
}

func TestPrintTrackingState(t *testing.T) {
	offsets := CycleOffsets{FirstNotice: 3, SecondNotice: 5, Deletion: 6}
	now := time.Date(2025, 1, 3, 15, 0, 0, 0, time.UTC)

	var idle bytes.Buffer
	PrintTrackingState(&idle, models.TrackingState{}, offsets, now)
	assert.Contains(t, idle.String(), "No cleanup cycle is open.")

	initial := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var open bytes.Buffer
	PrintTrackingState(&open, models.TrackingState{InitialDate: &initial, TicketID: "SD-7"}, offsets, now)
	out := open.String()
	assert.Contains(t, out, "SD-7")
	assert.Contains(t, out, "2025-01-01 (2 days ago)")
	assert.Contains(t, out, "Cycle day:       2 of 6")
	assert.Contains(t, out, "First reminder:  2025-01-04")
	assert.Contains(t, out, "Second reminder: 2025-01-06")
	assert.Contains(t, out, "Deletion:        2025-01-07")

	var broken bytes.Buffer
	PrintTrackingState(&broken, models.TrackingState{InitialDate: &initial}, offsets, now)
	assert.Contains(t, broken.String(), "MISSING")
}

func TestGetPricingMarker(t *testing.T) {
	assert.Equal(t, "api", GetPricingMarker("API"))
	assert.Equal(t, "cache", GetPricingMarker("Cache"))
	assert.Equal(t, "default*", GetPricingMarker("Default"))
	assert.Equal(t, "-", GetPricingMarker("N/A"))
	assert.Equal(t, "-", GetPricingMarker(""))
}

func TestPrintPricingAPIStats(t *testing.T) {
	pricing.ResetStats()
	t.Cleanup(pricing.ResetStats)

	var empty bytes.Buffer
	PrintPricingAPIStats(&empty)
	assert.Empty(t, empty.String())

	pricing.UpdateAPISuccessStats("EBS", "us-east-1")
	pricing.UpdateAPIFailureStats("EBS", "us-east-1")
	pricing.UpdateCacheHitStats("EBS", "us-east-1")

	var buf bytes.Buffer
	PrintPricingAPIStats(&buf)
	assert.Contains(t, buf.String(), "## AWS Pricing API Call Statistics")
	assert.Contains(t, buf.String(), "50.0%")
}

func TestPrintScanFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintScanFooter(&buf, time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC), 1500*time.Millisecond)
	assert.Equal(t, "\nScan completed at 2025-01-01 09:30:00 (took 1.50s)\n", buf.String())
}
