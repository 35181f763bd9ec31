package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"StorePulse/internal/config"
	"StorePulse/internal/infrastructure/artifacts"
	"StorePulse/internal/infrastructure/charts"
	"StorePulse/internal/infrastructure/llm"
	"StorePulse/internal/infrastructure/playstore"
	"StorePulse/internal/logging"
	"StorePulse/internal/ports"
	"StorePulse/internal/usecase"
)

// Application wires config to adapters and the batch orchestrator.
type Application struct {
	orchestrator *usecase.Orchestrator
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store := playstore.NewClient(
		cfg.Store.BaseURL, cfg.Store.Lang, cfg.Store.Country,
		nil, baseLogger.With("component", "playstore"))

	var narrative ports.NarrativeClient
	if cfg.Gemini.APIKey != "" {
		narrative = llm.NewGeminiClient(cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey)
	} else {
		baseLogger.Info("no Gemini API key configured, reports will be statistics-only")
	}

	writer, err := artifacts.NewWriter(cfg.Output.Dir, charts.Renderer{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init artifact writer: %w", err)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Metadata:  store,
		Reviews:   store,
		Narrative: narrative,
		Artifacts: writer,
		Logger:    baseLogger.With("component", "pipeline"),
	}, cfg.Thresholds.MinDays, cfg.Thresholds.MaxDays)

	orchestrator := usecase.NewOrchestrator(pipeline, writer, os.Stdout,
		baseLogger.With("component", "batch"))

	return &Application{orchestrator: orchestrator}, nil
}

// Run processes the given app identifiers as one batch.
func (a *Application) Run(ctx context.Context, appIDs []string) error {
	if len(appIDs) == 0 {
		return fmt.Errorf("no app identifiers provided")
	}

	_, err := a.orchestrator.Run(ctx, appIDs)
	return err
}
