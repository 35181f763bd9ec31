package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StorePulse/internal/domain"
)

func classifyDaysAgo(days, minDays, maxDays int) domain.GateStatus {
	now := time.Date(2025, time.November, 20, 12, 0, 0, 0, time.UTC)
	return Classify(now.AddDate(0, 0, -days), now, minDays, maxDays, nil)
}

func TestClassify_Proceed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.GateProceed, classifyDaysAgo(10, 7, 30))
}

func TestClassify_TooRecent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.GateTooRecent, classifyDaysAgo(3, 7, 30))
}

func TestClassify_TooOld(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.GateTooOld, classifyDaysAgo(45, 7, 30))
}

func TestClassify_InclusiveBoundaries(t *testing.T) {
	t.Parallel()

	// Both bounds are inclusive: ages equal to minDays or maxDays proceed.
	assert.Equal(t, domain.GateProceed, classifyDaysAgo(7, 7, 30))
	assert.Equal(t, domain.GateProceed, classifyDaysAgo(30, 7, 30))
	assert.Equal(t, domain.GateTooRecent, classifyDaysAgo(6, 7, 30))
	assert.Equal(t, domain.GateTooOld, classifyDaysAgo(31, 7, 30))
}

func TestClassify_ExactlyOneOutcome(t *testing.T) {
	t.Parallel()

	for age := 0; age <= 60; age++ {
		status := classifyDaysAgo(age, 7, 30)
		assert.Contains(t,
			[]domain.GateStatus{domain.GateProceed, domain.GateTooRecent, domain.GateTooOld},
			status, "age %d", age)
	}
}

func TestAgeDays_TruncatesPartialDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 20, 12, 0, 0, 0, time.UTC)
	lastUpdate := now.Add(-(9*24 + 23) * time.Hour)
	assert.Equal(t, 9, AgeDays(lastUpdate, now))
}
