package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StorePulse/internal/analysis"
	"StorePulse/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2025, time.November, 20, 12, 0, 0, 0, time.UTC)
}

func metaUpdatedDaysAgo(days int) domain.AppMetadata {
	return domain.AppMetadata{
		ID:         "com.example.app",
		Title:      "Example App",
		Version:    "2.4.1",
		LastUpdate: fixedNow().AddDate(0, 0, -days),
	}
}

func buildFixture(t *testing.T, reviews []domain.Review) domain.ResearchReport {
	t.Helper()
	result, err := analysis.Analyze(reviews)
	require.NoError(t, err)
	return Build(metaUpdatedDaysAgo(10), result, reviews, fixedNow())
}

func TestBuild_PercentagesSumToHundred(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		{PostedAt: fixedNow().AddDate(0, 0, -1), Score: 5},
		{PostedAt: fixedNow().AddDate(0, 0, -2), Score: 3},
		{PostedAt: fixedNow().AddDate(0, 0, -3), Score: 1},
		{PostedAt: fixedNow().AddDate(0, 0, -4), Score: 2},
		{PostedAt: fixedNow().AddDate(0, 0, -5), Score: 4},
		{PostedAt: fixedNow().AddDate(0, 0, -6), Score: 4},
		{PostedAt: fixedNow().AddDate(0, 0, -7), Score: 2},
	}

	research := buildFixture(t, reviews)
	stats := research.Statistics
	sum := stats.PositivePercentage + stats.NeutralPercentage + stats.NegativePercentage
	assert.InDelta(t, 100.0, sum, 0.3)
}

func TestBuild_PeriodMatchesGateAge(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{{PostedAt: fixedNow().AddDate(0, 0, -1), Score: 4}}
	research := buildFixture(t, reviews)
	assert.Equal(t, 10, research.AnalysisPeriodDays)
}

func TestBuild_SamplesSortedByThumbsUp(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		{PostedAt: fixedNow(), Score: 1, Content: "first", ThumbsUp: 2},
		{PostedAt: fixedNow(), Score: 2, Content: "second", ThumbsUp: 9},
		{PostedAt: fixedNow(), Score: 1, Content: "third", ThumbsUp: 9},
		{PostedAt: fixedNow(), Score: 2, Content: "fourth", ThumbsUp: 5},
		{PostedAt: fixedNow(), Score: 1, Content: "fifth", ThumbsUp: 0},
		{PostedAt: fixedNow(), Score: 1, Content: "sixth", ThumbsUp: 1},
	}

	research := buildFixture(t, reviews)

	require.Len(t, research.NegativeSamples, 5)
	got := make([]string, len(research.NegativeSamples))
	for i, sample := range research.NegativeSamples {
		got[i] = sample.Content
	}
	// Stable sort: the 9-thumb tie keeps input order (second before third).
	assert.Equal(t, []string{"second", "third", "fourth", "first", "sixth"}, got)
}

func TestBuild_NeutralSampleLimitIsThree(t *testing.T) {
	t.Parallel()

	reviews := make([]domain.Review, 0, 6)
	for i := 0; i < 6; i++ {
		reviews = append(reviews, domain.Review{PostedAt: fixedNow(), Score: 3, Content: "meh", ThumbsUp: i})
	}

	research := buildFixture(t, reviews)
	assert.Len(t, research.NeutralSamples, 3)
}

func TestBuild_VersionFallback(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{{PostedAt: fixedNow(), Score: 4}}
	result, err := analysis.Analyze(reviews)
	require.NoError(t, err)

	meta := metaUpdatedDaysAgo(10)
	meta.Version = ""
	research := Build(meta, result, reviews, fixedNow())
	assert.Equal(t, "N/A", research.Version)
}

func TestRenderNewsletter_WithNarrative(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		{PostedAt: fixedNow().AddDate(0, 0, -1), Score: 5, Content: "fantastic graphics engine"},
		{PostedAt: fixedNow().AddDate(0, 0, -2), Score: 1, Content: "constant crashes"},
	}
	research := buildFixture(t, reviews)

	doc := RenderNewsletter(research, "Players praise graphics but report crashes.")

	assert.Contains(t, doc, "**Subject:** Store Review Monitor: 2025-11-10 - Example App")
	assert.Contains(t, doc, "## AI Analysis")
	assert.Contains(t, doc, "Players praise graphics")
	assert.Contains(t, doc, "## Data Summary")
	assert.Contains(t, doc, "**Average Rating:** 3.00/5.0")
}

func TestRenderNewsletter_StatisticsOnlyWithoutNarrative(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{{PostedAt: fixedNow(), Score: 4, Content: "works offline nicely"}}
	research := buildFixture(t, reviews)

	doc := RenderNewsletter(research, "")

	assert.NotContains(t, doc, "## AI Analysis")
	assert.Contains(t, doc, "## Data Summary")
	assert.Contains(t, doc, "offline: 1")
}

func TestRenderNewsletter_KeywordsCappedAtTen(t *testing.T) {
	t.Parallel()

	content := "alpha bravo charlie delta echos foxtrot golfs hotel india juliett kilos mikes"
	reviews := []domain.Review{{PostedAt: fixedNow(), Score: 3, Content: content}}
	research := buildFixture(t, reviews)

	doc := RenderNewsletter(research, "")
	assert.Equal(t, 10, strings.Count(doc, ": 1\n"))
}

func TestRenderBatchSummary_GroupsAndAges(t *testing.T) {
	t.Parallel()

	result := domain.NewBatchResult()
	result.Record("com.fresh", domain.AppOutcome{
		Status: domain.StatusTooRecent, AppName: "Fresh", LastUpdate: fixedNow().AddDate(0, 0, -3),
	})
	result.Record("com.stale", domain.AppOutcome{
		Status: domain.StatusTooOld, AppName: "Stale", LastUpdate: fixedNow().AddDate(0, 0, -45),
	})
	result.Record("com.broken", domain.AppOutcome{Status: domain.StatusError, AppName: "unknown"})

	doc := RenderBatchSummary(result, fixedNow())

	assert.Contains(t, doc, "Apps processed: 3")
	assert.Contains(t, doc, "Skipped (updated too recently): 1")
	assert.Contains(t, doc, "Skipped (update too old): 1")
	assert.Contains(t, doc, "Age: 45 days")
	assert.Contains(t, doc, "ID: com.broken")
	// No last-update line for the app whose metadata fetch failed.
	errorsIdx := strings.Index(doc, "Errors: 1")
	require.Greater(t, errorsIdx, 0)
	assert.NotContains(t, doc[errorsIdx:], "Last update:")
}

func TestWriteConsoleSummary_RendersAllGroups(t *testing.T) {
	t.Parallel()

	result := domain.NewBatchResult()
	result.Record("com.ok", domain.AppOutcome{
		Status: domain.StatusSuccess, AppName: "Okay App", LastUpdate: fixedNow().AddDate(0, 0, -12),
	})

	var buf strings.Builder
	WriteConsoleSummary(&buf, result, fixedNow())

	out := buf.String()
	assert.Contains(t, out, "Analyzed: 1")
	assert.Contains(t, out, "Okay App")
	assert.Contains(t, out, "12d")
	assert.Contains(t, out, "Errors: 0")
}
