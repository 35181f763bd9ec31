package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"StorePulse/internal/domain"
)

const newsletterKeywordLimit = 10

// RenderNewsletter produces the markdown report artifact. When narrative is
// empty the AI section is omitted and the document degrades to the data
// summary alone.
func RenderNewsletter(research domain.ResearchReport, narrative string) string {
	var b strings.Builder

	updateDate := "unknown"
	if !research.LastUpdate.IsZero() {
		updateDate = research.LastUpdate.Format("2006-01-02")
	}

	fmt.Fprintf(&b, "**Subject:** Store Review Monitor: %s - %s\n", updateDate, research.AppName)
	b.WriteString("---\n\n")

	if narrative != "" {
		b.WriteString("## AI Analysis\n\n")
		b.WriteString(narrative)
		b.WriteString("\n\n---\n\n")
	}

	stats := research.Statistics
	b.WriteString("## Data Summary\n\n")
	fmt.Fprintf(&b, "**Analysis Period:** %d days since update\n", research.AnalysisPeriodDays)
	fmt.Fprintf(&b, "**Total Reviews:** %s\n", humanize.Comma(int64(stats.TotalReviews)))
	fmt.Fprintf(&b, "**Average Rating:** %.2f/5.0\n", stats.AverageRating)
	fmt.Fprintf(&b, "**Sentiment Split:** positive %.1f%% | neutral %.1f%% | negative %.1f%%\n\n",
		stats.PositivePercentage, stats.NeutralPercentage, stats.NegativePercentage)

	b.WriteString("**Top Keywords:**\n")
	for i, kw := range research.TopKeywords {
		if i == newsletterKeywordLimit {
			break
		}
		fmt.Fprintf(&b, "- %s: %d\n", kw.Word, kw.Count)
	}

	b.WriteString("\n---\n")
	return b.String()
}
