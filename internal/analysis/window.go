// Package analysis computes descriptive statistics and keyword signals over
// the reviews posted since an app's last update.
package analysis

import (
	"time"

	"StorePulse/internal/domain"
)

// WindowSince keeps reviews posted at or after cutoff, preserving order.
// Reviews whose timestamp failed normalization (zero instant) are excluded
// rather than treated as errors.
func WindowSince(reviews []domain.Review, cutoff time.Time) []domain.Review {
	windowed := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.PostedAt.IsZero() {
			continue
		}
		if !review.PostedAt.Before(cutoff) {
			windowed = append(windowed, review)
		}
	}
	return windowed
}
