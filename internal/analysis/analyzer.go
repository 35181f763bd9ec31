package analysis

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"StorePulse/internal/domain"
)

const (
	topKeywordLimit = 20
	minTokenLength  = 4
	dateLayout      = "2006-01-02"
)

// ErrEmptyAnalysis signals a caller bug: the pipeline must short-circuit an
// empty review window before reaching the analyzer.
var ErrEmptyAnalysis = errors.New("analysis: empty review collection")

var tokenExpr = regexp.MustCompile(`[a-z]+`)

// Analyze computes the aggregate statistics for a non-empty windowed review
// collection. Passing an empty collection is a contract violation and fails
// loudly instead of producing an undefined mean.
func Analyze(reviews []domain.Review) (domain.AnalysisResult, error) {
	if len(reviews) == 0 {
		return domain.AnalysisResult{}, ErrEmptyAnalysis
	}

	result := domain.AnalysisResult{
		TotalReviews:  len(reviews),
		RatingDist:    map[int]int{},
		SentimentDist: map[domain.Sentiment]int{},
		DailyTrends:   map[string]domain.DailyStat{},
	}

	var scoreSum int
	dailySums := map[string]int{}
	dailyCounts := map[string]int{}

	for _, review := range reviews {
		scoreSum += review.Score
		result.RatingDist[review.Score]++
		result.SentimentDist[domain.SentimentOf(review.Score)]++
		result.TotalThumbsUp += review.ThumbsUp

		day := review.PostedAt.Format(dateLayout)
		dailySums[day] += review.Score
		dailyCounts[day]++
	}

	result.AverageRating = float64(scoreSum) / float64(len(reviews))
	result.TopKeywords = topKeywords(reviews)

	for day, count := range dailyCounts {
		result.DailyTrends[day] = domain.DailyStat{
			Count:     count,
			MeanScore: round2(float64(dailySums[day]) / float64(count)),
		}
	}

	return result, nil
}

// topKeywords tallies lowercase letter runs across all review bodies,
// dropping short tokens and stop words, and keeps the 20 most frequent.
// Ties resolve to the token seen first in the overall scan.
func topKeywords(reviews []domain.Review) []domain.KeywordCount {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	scanIndex := 0

	for _, review := range reviews {
		if review.Content == "" {
			continue
		}
		for _, token := range tokenExpr.FindAllString(strings.ToLower(review.Content), -1) {
			if len(token) < minTokenLength {
				continue
			}
			if _, stopped := stopWords[token]; stopped {
				continue
			}
			if _, seen := counts[token]; !seen {
				firstSeen[token] = scanIndex
				scanIndex++
			}
			counts[token]++
		}
	}

	keywords := make([]domain.KeywordCount, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, domain.KeywordCount{Word: word, Count: count})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return firstSeen[keywords[i].Word] < firstSeen[keywords[j].Word]
	})

	if len(keywords) > topKeywordLimit {
		keywords = keywords[:topKeywordLimit]
	}
	return keywords
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
