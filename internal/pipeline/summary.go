package pipeline

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/LCLAMEDIA/openorders/internal/config"
	"github.com/LCLAMEDIA/openorders/internal/model"
)

// RenderSummary formats the plain-text run summary for the operations team.
func RenderSummary(stats *model.RunStats) string {
	var b strings.Builder

	b.WriteString("OPEN ORDERS REPORT - PROCESSING SUMMARY\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "Generated:  %s\n", stats.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Input file: %s\n\n", stats.InputFile)

	fmt.Fprintf(&b, "Total rows:                  %d\n", stats.TotalRows)
	fmt.Fprintf(&b, "Removed returns:             %d\n", stats.RemovedReturns)
	fmt.Fprintf(&b, "Removed non-primary samples: %d\n", stats.RemovedNonPrimarySamples)
	fmt.Fprintf(&b, "Remaining rows:              %d\n", stats.RemainingRows)
	fmt.Fprintf(&b, "Rows with customer label:    %d\n", stats.LabeledRows)
	fmt.Fprintf(&b, "Rows with robot SOH:         %d\n\n", stats.StockMatchedRows)

	if len(stats.NoteCounts) > 0 {
		b.WriteString("Checking notes:\n")
		notes := make([]string, 0, len(stats.NoteCounts))
		for note := range stats.NoteCounts {
			notes = append(notes, note)
		}
		sort.Strings(notes)
		for _, note := range notes {
			fmt.Fprintf(&b, "  %-32s %d\n", note, stats.NoteCounts[note])
		}
		b.WriteString("\n")
	}

	if stats.OutputFile != "" {
		fmt.Fprintf(&b, "Output file: %s\n", stats.OutputFile)
	}
	if stats.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", stats.Error)
	}
	fmt.Fprintf(&b, "Duration: %.2fs\n", stats.Duration)

	return b.String()
}

func writeSummary(cfg *config.AppConfig, stats *model.RunStats, now time.Time) (string, error) {
	name := fmt.Sprintf("PROCESSED_OOR_%s_summary.txt", now.Format("2006-01-02_15-04-05"))
	path := cfg.DataPath("exports", name)
	if err := os.WriteFile(path, []byte(RenderSummary(stats)), 0o644); err != nil {
		return "", err
	}
	stats.SummaryFile = name
	return path, nil
}
