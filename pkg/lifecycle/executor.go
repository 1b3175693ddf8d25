package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/younsl/ebsreaper/internal/models"
)

// Executor deletes volumes whose TTL reached zero
type Executor struct {
	provider VolumeProvider
	log      *logrus.Entry
}

// NewExecutor creates an Executor
func NewExecutor(provider VolumeProvider, log *logrus.Entry) *Executor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Executor{provider: provider, log: log}
}

// Execute deletes every expired volume in records and returns the ids deleted and the
// deletion report. The first failed delete stops the batch; the ids deleted before it
// are still returned alongside the error.
func (e *Executor) Execute(ctx context.Context, records []models.VolumeRecord, account string, today time.Time) ([]string, string, error) {
	var deleted []string
	var report strings.Builder

	for _, r := range records {
		if !r.Expired() {
			continue
		}
		if err := e.provider.DeleteVolume(ctx, r.ID); err != nil {
			e.log.WithError(err).WithField("volume_id", r.ID).Error("Failed to delete volume, aborting batch")
			return deleted, report.String(), fmt.Errorf("error deleting volume %s: %w", r.ID, err)
		}
		e.log.WithFields(logrus.Fields{"volume_id": r.ID, "size": r.Size}).Warn("Deleted volume")
		deleted = append(deleted, r.ID)
		report.WriteString(DeletionLine(r, account, today))
	}

	if len(deleted) == 0 {
		return nil, NothingDeletedReport, nil
	}
	return deleted, report.String(), nil
}
