package usecase

import (
	"context"
	"log/slog"
	"time"

	"StorePulse/internal/analysis"
	"StorePulse/internal/domain"
	"StorePulse/internal/gate"
	"StorePulse/internal/ports"
	"StorePulse/internal/report"
)

// Placeholder name recorded when the metadata fetch never succeeded.
const unknownAppName = "unknown"

// PipelineDeps wires all driven adapters into the single-app pipeline.
// Narrative is optional; a nil client degrades reports to statistics only.
type PipelineDeps struct {
	Metadata  ports.MetadataProvider
	Reviews   ports.ReviewProvider
	Narrative ports.NarrativeClient
	Artifacts ports.ArtifactWriter
	Logger    *slog.Logger
	Now       func() time.Time
}

// Pipeline runs the gate -> window -> analyze -> report sequence for one app.
// Every run ends in a terminal status; no step failure propagates as an error
// to the caller.
type Pipeline struct {
	metadata  ports.MetadataProvider
	reviews   ports.ReviewProvider
	narrative ports.NarrativeClient
	artifacts ports.ArtifactWriter
	logger    *slog.Logger
	now       func() time.Time
	minDays   int
	maxDays   int
}

// NewPipeline constructs the single-app pipeline with gate thresholds.
func NewPipeline(deps PipelineDeps, minDays, maxDays int) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		metadata:  deps.Metadata,
		reviews:   deps.Reviews,
		narrative: deps.Narrative,
		artifacts: deps.Artifacts,
		logger:    deps.Logger,
		now:       now,
		minDays:   minDays,
		maxDays:   maxDays,
	}
}

// Run executes the pipeline for one app and returns its terminal outcome.
func (p *Pipeline) Run(ctx context.Context, appID string) domain.AppOutcome {
	meta, err := p.metadata.AppDetails(ctx, appID)
	if err != nil {
		p.warn("metadata fetch failed", appID, err)
		return domain.AppOutcome{Status: domain.StatusError, AppName: unknownAppName}
	}

	now := p.now()
	outcome := domain.AppOutcome{AppName: meta.Title, LastUpdate: meta.LastUpdate}

	switch gate.Classify(meta.LastUpdate, now, p.minDays, p.maxDays, p.logger) {
	case domain.GateTooRecent:
		outcome.Status = domain.StatusTooRecent
		return outcome
	case domain.GateTooOld:
		outcome.Status = domain.StatusTooOld
		return outcome
	}

	history, err := p.reviews.Reviews(ctx, appID)
	if err != nil {
		p.warn("review fetch failed", appID, err)
		outcome.Status = domain.StatusError
		return outcome
	}

	windowed := analysis.WindowSince(history, meta.LastUpdate)
	if len(windowed) == 0 {
		outcome.Status = domain.StatusNoReviews
		return outcome
	}

	result, err := analysis.Analyze(windowed)
	if err != nil {
		// Unreachable given the window guard above; a hit means a caller bug.
		p.error("analysis precondition violated", appID, err)
		outcome.Status = domain.StatusError
		return outcome
	}

	research := report.Build(meta, result, windowed, now)

	narrative := ""
	if p.narrative != nil {
		narrative, err = p.narrative.Summarize(ctx, research)
		if err != nil {
			p.warn("narrative generation failed, continuing without it", appID, err)
			narrative = ""
		}
	}

	if _, err := p.artifacts.WriteNewsletter(appID, report.RenderNewsletter(research, narrative)); err != nil {
		p.warn("newsletter write failed", appID, err)
		outcome.Status = domain.StatusError
		return outcome
	}

	if _, err := p.artifacts.WriteCharts(appID, research); err != nil {
		p.warn("chart write failed", appID, err)
		outcome.Status = domain.StatusError
		return outcome
	}

	outcome.Status = domain.StatusSuccess
	return outcome
}

func (p *Pipeline) warn(msg, appID string, err error) {
	if p.logger != nil {
		p.logger.Warn(msg, "app_id", appID, "error", err)
	}
}

func (p *Pipeline) error(msg, appID string, err error) {
	if p.logger != nil {
		p.logger.Error(msg, "app_id", appID, "error", err)
	}
}
