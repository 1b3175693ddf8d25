package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/younsl/ebsreaper/internal/models"
	"github.com/younsl/ebsreaper/pkg/utils"
)

// TicketSummary is the summary of every cleanup ticket
const TicketSummary = "Automated detection and deletion of orphaned, untagged EBS volumes"

// ReminderPrefix starts every reminder comment
const ReminderPrefix = "\nA KIND REMINDER!\n"

// NothingDeletedReport closes a cycle in which no volume reached a TTL of zero
const NothingDeletedReport = "No untagged EBS volume had reached a TTL of 0, nothing was deleted.\n"

// Describe composes the ticket description listing every tracked volume and its deletion ETA.
// It returns an empty string when records is empty.
func Describe(records []models.VolumeRecord, account string, today time.Time, deletionDays int, withCost bool) string {
	var b strings.Builder
	deletionDate := utils.FormatDate(utils.AddDays(today, deletionDays))
	var total float64

	for _, r := range records {
		if r.Expired() {
			fmt.Fprintf(&b, "Untagged EBS volume with id %s in account %s, status %s, size %d will be deleted on %s at 0:00 UTC\n",
				r.ID, account, r.Status, r.Size, deletionDate)
		} else {
			fmt.Fprintf(&b, "Untagged EBS volume in account %s with id %s, status %s, size %d will be deleted after %s on %s. Please tag the volume, if the deletion is unwanted\n",
				account, r.ID, r.Status, r.Size, r.TTL, deletionDate)
		}
		total += r.EstimatedMonthlyCost
	}

	if withCost && len(records) > 0 {
		fmt.Fprintf(&b, "Estimated monthly cost of the volumes listed above: $%.2f\n", total)
	}
	return b.String()
}

// DeletionLine is the report entry for one deleted volume
func DeletionLine(r models.VolumeRecord, account string, today time.Time) string {
	return fmt.Sprintf("UNTAGGED EBS VOLUME IN ACCOUNT %s WITH ID %s, STATUS %s, SIZE %d WAS DELETED ON %s.\n",
		account, r.ID, r.Status, r.Size, utils.FormatDate(today))
}
