package ports

import (
	"context"

	"StorePulse/internal/domain"
)

// MetadataProvider fetches the store listing snapshot for one app.
type MetadataProvider interface {
	AppDetails(ctx context.Context, appID string) (domain.AppMetadata, error)
}

// ReviewProvider pulls the full review history for one app.
type ReviewProvider interface {
	Reviews(ctx context.Context, appID string) ([]domain.Review, error)
}

// NarrativeClient turns a research report into a short natural-language
// summary via an external text-generation service.
type NarrativeClient interface {
	Summarize(ctx context.Context, research domain.ResearchReport) (string, error)
}

// ArtifactWriter persists report, chart, and batch-summary artifacts,
// returning the path written.
type ArtifactWriter interface {
	WriteNewsletter(appID, body string) (string, error)
	WriteCharts(appID string, research domain.ResearchReport) (string, error)
	WriteBatchSummary(body string) (string, error)
}
