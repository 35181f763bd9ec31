// Package main provides the entry point for the storepulse CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"StorePulse/internal/app"
	"StorePulse/internal/config"
	"StorePulse/internal/logging"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "storepulse",
		Short:         "StorePulse - app-store review monitoring and analysis",
		Long:          "StorePulse monitors app-store listings, analyzes reviews posted\nsince the latest update, and produces newsletter and chart artifacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	var (
		apps     []string
		appsFile string
		minDays  int
		maxDays  int
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze one or more apps and write report artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if minDays > 0 {
				cfg.Thresholds.MinDays = minDays
			}
			if maxDays > 0 {
				cfg.Thresholds.MaxDays = maxDays
			}
			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			if cfg.Thresholds.MinDays > cfg.Thresholds.MaxDays {
				return fmt.Errorf("min-days %d exceeds max-days %d",
					cfg.Thresholds.MinDays, cfg.Thresholds.MaxDays)
			}

			ids, err := collectAppIDs(apps, appsFile)
			if err != nil {
				return err
			}

			logger := logging.New(cfg.Logging.Level)
			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			return application.Run(cmd.Context(), ids)
		},
	}

	cmd.Flags().StringSliceVar(&apps, "apps", nil, "app identifiers to analyze (comma separated)")
	cmd.Flags().StringVar(&appsFile, "apps-file", "", "file with one app identifier per line")
	cmd.Flags().IntVar(&minDays, "min-days", 0, "minimum days since last update (default from config)")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "maximum days since last update (default from config)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for artifacts (default from config)")

	return cmd
}

// collectAppIDs merges flag-supplied and file-supplied identifiers in the
// order given; duplicates are removed downstream.
func collectAppIDs(apps []string, appsFile string) ([]string, error) {
	ids := make([]string, 0, len(apps))
	for _, id := range apps {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	if appsFile != "" {
		raw, err := os.ReadFile(appsFile)
		if err != nil {
			return nil, fmt.Errorf("read apps file: %w", err)
		}
		for _, line := range strings.Split(string(raw), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no app identifiers: pass --apps or --apps-file")
	}
	return ids, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "storepulse %s\n", version)
		},
	}
}
