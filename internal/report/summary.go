package report

import (
	"fmt"
	"strings"
	"time"

	"StorePulse/internal/domain"
	"StorePulse/internal/gate"
)

// statusOrder fixes the group ordering in summary output.
var statusOrder = []domain.PipelineStatus{
	domain.StatusSuccess,
	domain.StatusTooRecent,
	domain.StatusTooOld,
	domain.StatusNoReviews,
	domain.StatusError,
}

var statusTitles = map[domain.PipelineStatus]string{
	domain.StatusSuccess:   "Analyzed",
	domain.StatusTooRecent: "Skipped (updated too recently)",
	domain.StatusTooOld:    "Skipped (update too old)",
	domain.StatusNoReviews: "No reviews in window",
	domain.StatusError:     "Errors",
}

// RenderBatchSummary produces the persisted batch summary artifact: every
// processed app grouped by terminal status with its name, identifier, and
// last-update date where known.
func RenderBatchSummary(result *domain.BatchResult, now time.Time) string {
	var b strings.Builder
	divider := strings.Repeat("=", 80)

	b.WriteString(divider + "\n")
	b.WriteString("Batch Analysis Summary\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Run date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Apps processed: %d\n", len(result.Order))

	groups := result.ByStatus()
	for _, status := range statusOrder {
		ids := groups[status]
		fmt.Fprintf(&b, "\n%s: %d\n", statusTitles[status], len(ids))
		b.WriteString(strings.Repeat("-", 40) + "\n")

		for _, id := range ids {
			outcome := result.Outcomes[id]
			fmt.Fprintf(&b, "  %s\n", outcome.AppName)
			fmt.Fprintf(&b, "  ID: %s\n", id)
			if !outcome.LastUpdate.IsZero() {
				fmt.Fprintf(&b, "  Last update: %s\n", outcome.LastUpdate.Format("2006-01-02"))
				if status == domain.StatusTooOld {
					fmt.Fprintf(&b, "  Age: %d days\n", gate.AgeDays(outcome.LastUpdate, now))
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
