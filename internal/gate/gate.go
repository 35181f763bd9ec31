// Package gate decides whether an app's last update is mature enough for
// review analysis: old enough that feedback has accumulated, recent enough
// that the release is still live.
package gate

import (
	"log/slog"
	"time"

	"StorePulse/internal/domain"
)

// Classify buckets the time since lastUpdate against inclusive [minDays,
// maxDays] bounds. An age of exactly minDays or maxDays proceeds.
func Classify(lastUpdate, now time.Time, minDays, maxDays int, logger *slog.Logger) domain.GateStatus {
	age := AgeDays(lastUpdate, now)

	var status domain.GateStatus
	switch {
	case age > maxDays:
		status = domain.GateTooOld
	case age < minDays:
		status = domain.GateTooRecent
	default:
		status = domain.GateProceed
	}

	if logger != nil {
		logger.Info("update gate",
			"age_days", age,
			"min_days", minDays,
			"max_days", maxDays,
			"status", string(status))
	}

	return status
}

// AgeDays returns the whole days elapsed between lastUpdate and now,
// truncated toward zero.
func AgeDays(lastUpdate, now time.Time) int {
	return int(now.Sub(lastUpdate).Hours() / 24)
}
