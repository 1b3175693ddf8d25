package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/ebsreaper/internal/models"
)

// MAX_NAME_WIDTH defines the maximum width for Name column
const MAX_NAME_WIDTH = 20

// VolumeRow is one line of the status table
type VolumeRow struct {
	models.VolumeRecord
	TTLTag string // raw TTL tag value, empty when the volume is not tracked yet
}

// truncateName limits name to MAX_NAME_WIDTH display columns, padding shorter names
func truncateName(name string) string {
	if name == "" {
		name = "N/A"
	}

	if StringWidth(name) > MAX_NAME_WIDTH {
		var b strings.Builder
		currentWidth := 0
		for _, r := range name {
			charWidth := RuneWidth(r)
			if currentWidth+charWidth > MAX_NAME_WIDTH-2 { // -2 for ".."
				break
			}
			b.WriteRune(r)
			currentWidth += charWidth
		}
		name = b.String() + ".."
	}

	return PadString(name, MAX_NAME_WIDTH)
}

// PrintVolumesTable prints the available volumes with their TTL tag in listing order
func PrintVolumesTable(out io.Writer, rows []VolumeRow, now time.Time) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No available EBS volumes found.")
		return
	}

	// kubectl style tabwriter
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVOLUME ID\tTYPE\tSIZE\tAGE\tTTL\tMONTHLY COST\tPRICING")

	for _, row := range rows {
		ttl := row.TTLTag
		if ttl == "" {
			ttl = "untracked"
		}

		cost := "N/A"
		if row.PricingSource != "" && row.PricingSource != "N/A" {
			cost = fmt.Sprintf("$%.2f", row.EstimatedMonthlyCost)
		}

		age := "unknown"
		if !row.CreationTime.IsZero() {
			age = humanize.RelTime(row.CreationTime, now, "ago", "from now")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateName(row.Name),
			row.ID,
			row.VolumeType,
			humanize.IBytes(uint64(row.Size)<<30),
			age,
			ttl,
			cost,
			GetPricingMarker(row.PricingSource),
		)
	}

	printVolumeTotals(w, rows)
	w.Flush()
}

// printVolumeTotals prints the summary information at the bottom of the table
func printVolumeTotals(w *tabwriter.Writer, rows []VolumeRow) {
	totalSize := 0
	var totalCost float64
	for _, row := range rows {
		totalSize += row.Size
		totalCost += row.EstimatedMonthlyCost
	}

	fmt.Fprintf(w, "Total:\t%d volumes\t\t%s\t\t\t$%.2f\t\n",
		len(rows),
		humanize.IBytes(uint64(totalSize)<<30),
		totalCost,
	)
}
