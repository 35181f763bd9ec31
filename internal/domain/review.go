package domain

import "time"

// AppMetadata is the store listing snapshot fetched once per pipeline run.
type AppMetadata struct {
	ID         string
	Title      string
	Version    string
	LastUpdate time.Time
}

// Review is a single user feedback item pulled from the store listing.
type Review struct {
	PostedAt time.Time
	Score    int
	Content  string
	ThumbsUp int
}

// Sentiment classifies a review purely by its score.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SentimentOf buckets a 1-5 score: >=4 positive, ==3 neutral, <=2 negative.
func SentimentOf(score int) Sentiment {
	switch {
	case score >= 4:
		return SentimentPositive
	case score == 3:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}

// GateStatus is the outcome of the update-recency eligibility check.
type GateStatus string

const (
	GateProceed   GateStatus = "proceed"
	GateTooRecent GateStatus = "too_recent"
	GateTooOld    GateStatus = "too_old"
)

// PipelineStatus is the terminal outcome of one app's pipeline run.
type PipelineStatus string

const (
	StatusSuccess   PipelineStatus = "success"
	StatusTooRecent PipelineStatus = "too_recent"
	StatusTooOld    PipelineStatus = "too_old"
	StatusNoReviews PipelineStatus = "no_reviews"
	StatusError     PipelineStatus = "error"
)

// DailyStat aggregates reviews posted on one calendar date.
type DailyStat struct {
	Count     int
	MeanScore float64
}

// KeywordCount pairs a token with its frequency; slices hold descending
// frequency order with ties broken by first occurrence.
type KeywordCount struct {
	Word  string
	Count int
}

// AnalysisResult holds the aggregate statistics computed over a windowed
// review collection. Daily maps are keyed by ISO date (local calendar day).
type AnalysisResult struct {
	TotalReviews  int
	AverageRating float64
	RatingDist    map[int]int
	SentimentDist map[Sentiment]int
	TotalThumbsUp int
	TopKeywords   []KeywordCount
	DailyTrends   map[string]DailyStat
}

// SampleReview is a representative review projected for the research report.
type SampleReview struct {
	Content  string `json:"content"`
	Score    int    `json:"score"`
	ThumbsUp int    `json:"thumbs_up"`
}

// ReportStatistics carries the headline numbers, rounded to their final
// precision before any serialization or provider call.
type ReportStatistics struct {
	TotalReviews       int
	AverageRating      float64
	PositivePercentage float64
	NeutralPercentage  float64
	NegativePercentage float64
	RatingDist         map[int]int
	TotalThumbsUp      int
}

// DailyTrends splits the per-day series for the report consumers.
type DailyTrends struct {
	ReviewCounts   map[string]int
	AverageRatings map[string]float64
}

// ResearchReport is the denormalized structure handed to the narrative
// provider and the artifact writers.
type ResearchReport struct {
	AppName            string
	AppID              string
	Version            string
	LastUpdate         time.Time
	AnalysisPeriodDays int
	Statistics         ReportStatistics
	TopKeywords        []KeywordCount
	PositiveSamples    []SampleReview
	NegativeSamples    []SampleReview
	NeutralSamples     []SampleReview
	Trends             DailyTrends
}

// AppOutcome is one entry of a batch result. LastUpdate stays zero when the
// metadata fetch never succeeded.
type AppOutcome struct {
	Status     PipelineStatus
	AppName    string
	LastUpdate time.Time
}

// BatchResult accumulates per-app outcomes in processing order.
type BatchResult struct {
	Order    []string
	Outcomes map[string]AppOutcome
}

// NewBatchResult builds an empty accumulator.
func NewBatchResult() *BatchResult {
	return &BatchResult{Outcomes: map[string]AppOutcome{}}
}

// Record stores the outcome for an app, keeping first-seen order.
func (b *BatchResult) Record(appID string, outcome AppOutcome) {
	if _, ok := b.Outcomes[appID]; !ok {
		b.Order = append(b.Order, appID)
	}
	b.Outcomes[appID] = outcome
}

// ByStatus groups recorded app IDs by terminal status, preserving order.
func (b *BatchResult) ByStatus() map[PipelineStatus][]string {
	groups := map[PipelineStatus][]string{}
	for _, id := range b.Order {
		status := b.Outcomes[id].Status
		groups[status] = append(groups[status], id)
	}
	return groups
}
