package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/ebsreaper/internal/models"
	"github.com/younsl/ebsreaper/pkg/utils"
)

// CycleOffsets are the configured day offsets shown in the cycle summary
type CycleOffsets struct {
	FirstNotice  int
	SecondNotice int
	Deletion     int
}

// GetPricingMarker returns a short marker for where a price came from
func GetPricingMarker(source string) string {
	switch source {
	case "API":
		return "api"
	case "Cache":
		return "cache"
	case "Default":
		return "default*"
	default:
		return "-"
	}
}

// PrintTrackingState prints whether a cleanup cycle is open and its upcoming dates
func PrintTrackingState(out io.Writer, state models.TrackingState, offsets CycleOffsets, now time.Time) {
	fmt.Fprintln(out, "## Cleanup Cycle")
	if !state.Open() {
		fmt.Fprintln(out, "No cleanup cycle is open.")
		return
	}

	initial := *state.InitialDate
	ticket := state.TicketID
	if ticket == "" {
		ticket = "MISSING"
	}
	fmt.Fprintf(out, "Ticket:          %s\n", ticket)
	fmt.Fprintf(out, "Opened:          %s (%s)\n", utils.FormatDate(initial), humanize.RelTime(initial, utils.TruncateToDate(now), "ago", "from now"))
	fmt.Fprintf(out, "Cycle day:       %d of %d\n", utils.DaysBetween(initial, now), offsets.Deletion)
	fmt.Fprintf(out, "First reminder:  %s\n", utils.FormatDate(utils.AddDays(initial, offsets.FirstNotice)))
	fmt.Fprintf(out, "Second reminder: %s\n", utils.FormatDate(utils.AddDays(initial, offsets.SecondNotice)))
	fmt.Fprintf(out, "Deletion:        %s\n", utils.FormatDate(utils.AddDays(initial, offsets.Deletion)))
}

// printTimestamp prints the scan timestamp and duration
func printTimestamp(out io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	fmt.Fprintf(out, "Scan completed at %s (took %.2fs)\n",
		scanStartTime.Format("2006-01-02 15:04:05"), scanDuration.Seconds())
}

// PrintScanFooter prints when the status scan ran and how long it took
func PrintScanFooter(out io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	fmt.Fprintln(out)
	printTimestamp(out, scanStartTime, scanDuration)
}
