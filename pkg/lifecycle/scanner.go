package lifecycle

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/younsl/ebsreaper/internal/models"
)

// Scanner lists unattached volumes and counts their TTL tag down
type Scanner struct {
	provider VolumeProvider
	tagKey   string
	horizon  int
	period   int
	log      *logrus.Entry
}

// NewScanner creates a Scanner. New volumes get horizon as TTL, tracked ones lose period per scan.
func NewScanner(provider VolumeProvider, tagKey string, horizon, period int, log *logrus.Entry) *Scanner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Scanner{
		provider: provider,
		tagKey:   tagKey,
		horizon:  horizon,
		period:   period,
		log:      log,
	}
}

// NextTTL returns the TTL after one scan period, never below zero
func NextTTL(current, period int) int {
	if current <= 0 {
		return 0
	}
	next := current - period
	if next < 0 {
		return 0
	}
	return next
}

// Scan tags every available volume and returns their records in listing order.
// Any tagging failure aborts the scan.
func (s *Scanner) Scan(ctx context.Context) ([]models.VolumeRecord, error) {
	volumes, err := s.provider.ListAvailableVolumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing available volumes: %w", err)
	}

	records := make([]models.VolumeRecord, 0, len(volumes))
	for _, volume := range volumes {
		record := volume.VolumeRecord
		log := s.log.WithField("volume_id", record.ID)

		raw, tagged := volume.Tags[s.tagKey]
		if !tagged {
			ttl := strconv.Itoa(s.horizon)
			if err := s.provider.SetTag(ctx, record.ID, s.tagKey, ttl); err != nil {
				return nil, fmt.Errorf("error tagging volume %s: %w", record.ID, err)
			}
			log.WithField("ttl", ttl).Info("Tagged untracked volume")
			record.TTL = ttl
			records = append(records, record)
			continue
		}

		current, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("volume %s has a non-numeric %s tag %q: %w", record.ID, s.tagKey, raw, err)
		}

		if current <= 0 {
			record.TTL = "0"
			records = append(records, record)
			continue
		}

		ttl := strconv.Itoa(NextTTL(current, s.period))
		if err := s.provider.SetTag(ctx, record.ID, s.tagKey, ttl); err != nil {
			return nil, fmt.Errorf("error updating %s tag on volume %s: %w", s.tagKey, record.ID, err)
		}
		log.WithFields(logrus.Fields{"previous_ttl": current, "ttl": ttl}).Info("Decremented volume TTL")
		record.TTL = ttl
		records = append(records, record)
	}

	return records, nil
}
