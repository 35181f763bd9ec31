// Package report reshapes analysis output into the research-report structure
// and renders the newsletter and batch-summary artifacts.
package report

import (
	"math"
	"sort"
	"time"

	"StorePulse/internal/domain"
	"StorePulse/internal/gate"
)

const (
	positiveSampleLimit = 5
	negativeSampleLimit = 5
	neutralSampleLimit  = 3
)

// Build denormalizes metadata plus analysis results into a ResearchReport.
// All numeric fields are rounded to their final precision here; nothing
// downstream recomputes them. The caller guarantees a non-empty window.
func Build(meta domain.AppMetadata, result domain.AnalysisResult, windowed []domain.Review, now time.Time) domain.ResearchReport {
	total := result.TotalReviews

	pct := func(sentiment domain.Sentiment) float64 {
		return round1(100 * float64(result.SentimentDist[sentiment]) / float64(total))
	}

	version := meta.Version
	if version == "" {
		version = "N/A"
	}

	trends := domain.DailyTrends{
		ReviewCounts:   make(map[string]int, len(result.DailyTrends)),
		AverageRatings: make(map[string]float64, len(result.DailyTrends)),
	}
	for date, stat := range result.DailyTrends {
		trends.ReviewCounts[date] = stat.Count
		trends.AverageRatings[date] = stat.MeanScore
	}

	return domain.ResearchReport{
		AppName:            meta.Title,
		AppID:              meta.ID,
		Version:            version,
		LastUpdate:         meta.LastUpdate,
		AnalysisPeriodDays: gate.AgeDays(meta.LastUpdate, now),
		Statistics: domain.ReportStatistics{
			TotalReviews:       total,
			AverageRating:      round2(result.AverageRating),
			PositivePercentage: pct(domain.SentimentPositive),
			NeutralPercentage:  pct(domain.SentimentNeutral),
			NegativePercentage: pct(domain.SentimentNegative),
			RatingDist:         result.RatingDist,
			TotalThumbsUp:      result.TotalThumbsUp,
		},
		TopKeywords:     result.TopKeywords,
		PositiveSamples: sampleBucket(windowed, domain.SentimentPositive, positiveSampleLimit),
		NegativeSamples: sampleBucket(windowed, domain.SentimentNegative, negativeSampleLimit),
		NeutralSamples:  sampleBucket(windowed, domain.SentimentNeutral, neutralSampleLimit),
		Trends:          trends,
	}
}

// sampleBucket picks the most-helpful reviews of one sentiment bucket,
// sorted by thumbs-up descending with ties keeping original order.
func sampleBucket(reviews []domain.Review, sentiment domain.Sentiment, limit int) []domain.SampleReview {
	bucket := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if domain.SentimentOf(review.Score) == sentiment {
			bucket = append(bucket, review)
		}
	}

	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].ThumbsUp > bucket[j].ThumbsUp
	})

	if len(bucket) > limit {
		bucket = bucket[:limit]
	}

	samples := make([]domain.SampleReview, len(bucket))
	for i, review := range bucket {
		samples[i] = domain.SampleReview{
			Content:  review.Content,
			Score:    review.Score,
			ThumbsUp: review.ThumbsUp,
		}
	}
	return samples
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
