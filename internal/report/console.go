package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"StorePulse/internal/domain"
	"StorePulse/internal/gate"
)

var statusColors = map[domain.PipelineStatus]*color.Color{
	domain.StatusSuccess:   color.New(color.FgGreen),
	domain.StatusTooRecent: color.New(color.FgYellow),
	domain.StatusTooOld:    color.New(color.FgYellow),
	domain.StatusNoReviews: color.New(color.FgCyan),
	domain.StatusError:     color.New(color.FgRed),
}

// WriteConsoleSummary renders the batch outcome as a table per status group,
// mirroring the persisted summary for operators watching the run.
func WriteConsoleSummary(w io.Writer, result *domain.BatchResult, now time.Time) {
	groups := result.ByStatus()

	for _, status := range statusOrder {
		ids := groups[status]
		header := statusColors[status].Sprintf("%s: %d", statusTitles[status], len(ids))
		fmt.Fprintln(w, header)

		if len(ids) == 0 {
			continue
		}

		tbl := table.NewWriter()
		tbl.SetOutputMirror(w)
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"App", "ID", "Last Update", "Age"})

		for _, id := range ids {
			outcome := result.Outcomes[id]
			lastUpdate, age := "unknown", ""
			if !outcome.LastUpdate.IsZero() {
				lastUpdate = outcome.LastUpdate.Format("2006-01-02")
				age = fmt.Sprintf("%dd", gate.AgeDays(outcome.LastUpdate, now))
			}
			tbl.AppendRow(table.Row{outcome.AppName, id, lastUpdate, age})
		}

		tbl.Render()
	}
}
