package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"StorePulse/internal/domain"
	"StorePulse/internal/ports"
	"StorePulse/internal/report"
)

// Orchestrator runs the single-app pipeline over many identifiers and rolls
// the outcomes up into console output and a persisted summary artifact.
type Orchestrator struct {
	pipeline  *Pipeline
	artifacts ports.ArtifactWriter
	logger    *slog.Logger
	console   io.Writer
	now       func() time.Time
}

// NewOrchestrator wires the batch runner. console receives the human-facing
// progress and summary output.
func NewOrchestrator(pipeline *Pipeline, artifacts ports.ArtifactWriter, console io.Writer, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		pipeline:  pipeline,
		artifacts: artifacts,
		logger:    logger,
		console:   console,
		now:       pipeline.now,
	}
}

// Run processes every app sequentially, deduplicating identifiers while
// preserving first-seen order. One app's failure never stops the batch; the
// summary covers every app attempted.
func (o *Orchestrator) Run(ctx context.Context, appIDs []string) (*domain.BatchResult, error) {
	ids := dedupe(appIDs)
	result := domain.NewBatchResult()

	for i, appID := range ids {
		fmt.Fprintf(o.console, "[%d/%d] analyzing %s\n", i+1, len(ids), appID)
		if o.logger != nil {
			o.logger.Info("pipeline start", "app_id", appID, "position", i+1, "total", len(ids))
		}

		outcome := o.pipeline.Run(ctx, appID)
		result.Record(appID, outcome)

		if o.logger != nil {
			o.logger.Info("pipeline done", "app_id", appID, "status", string(outcome.Status))
		}
	}

	now := o.now()
	report.WriteConsoleSummary(o.console, result, now)

	path, err := o.artifacts.WriteBatchSummary(report.RenderBatchSummary(result, now))
	if err != nil {
		return result, fmt.Errorf("write batch summary: %w", err)
	}
	fmt.Fprintf(o.console, "summary saved to %s\n", path)

	return result, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
