package domain

import (
	"log/slog"
	"time"
)

// Store responses carry timestamps in whatever shape the upstream endpoint
// happens to emit: epoch seconds, epoch milliseconds, an ISO-8601 string, or
// an already-parsed instant. RawTimestamp tags the shape explicitly so
// normalization never falls back to runtime type inspection.

// TimestampKind tags the wire representation of a raw timestamp.
type TimestampKind int

const (
	TimestampEpoch TimestampKind = iota
	TimestampISO
	TimestampInstant
)

// Values above this threshold are epoch milliseconds, below it epoch seconds.
const millisThreshold = 10_000_000_000

// RawTimestamp is a tagged union over the timestamp shapes providers return.
type RawTimestamp struct {
	Kind    TimestampKind
	Epoch   int64
	ISO     string
	Instant time.Time
}

// EpochTimestamp wraps an integer epoch value (seconds or milliseconds).
func EpochTimestamp(v int64) RawTimestamp {
	return RawTimestamp{Kind: TimestampEpoch, Epoch: v}
}

// ISOTimestamp wraps an ISO-8601 string.
func ISOTimestamp(s string) RawTimestamp {
	return RawTimestamp{Kind: TimestampISO, ISO: s}
}

// InstantTimestamp wraps an already-parsed instant.
func InstantTimestamp(t time.Time) RawTimestamp {
	return RawTimestamp{Kind: TimestampInstant, Instant: t}
}

// Normalize converts a raw timestamp into a local-clock instant. A string
// that fails ISO-8601 parsing yields the zero instant and a diagnostic; the
// caller treats zero as "unknown" rather than aborting the run.
func (r RawTimestamp) Normalize(logger *slog.Logger) time.Time {
	switch r.Kind {
	case TimestampEpoch:
		if r.Epoch > millisThreshold {
			return time.UnixMilli(r.Epoch)
		}
		return time.Unix(r.Epoch, 0)
	case TimestampISO:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.ParseInLocation(layout, r.ISO, time.Local); err == nil {
				return t
			}
		}
		if logger != nil {
			logger.Warn("unparseable timestamp", "value", r.ISO)
		}
		return time.Time{}
	default:
		return r.Instant
	}
}
