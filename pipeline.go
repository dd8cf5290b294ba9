package main

import (
	"fmt"
	"time"

	"github.com/marine-data/behavior.report/db"
	"github.com/marine-data/behavior.report/internal/config"
	"github.com/marine-data/behavior.report/internal/monitoring"
	"github.com/marine-data/behavior.report/internal/report"
	"github.com/marine-data/behavior.report/internal/source"
	"github.com/marine-data/behavior.report/internal/tracking"
)

// runAnalysis executes one synchronous pass of the pipeline: load samples
// (file or synthetic fallback), analyze, persist, export, plot. The second
// return value reports whether a summary was produced; with fewer than two
// subjects the run is skipped without error and nothing is recorded.
func runAnalysis(cfg config.Config, database *db.DB) (db.Run, bool, error) {
	src := &source.FallbackSource{
		Path: cfg.DataPath,
		Generator: &tracking.SyntheticGenerator{
			Seed:        cfg.SyntheticSeed,
			SampleCount: cfg.SyntheticSamples,
		},
	}

	res, err := src.Load()
	if err != nil {
		return db.Run{}, false, fmt.Errorf("failed to load tracking data: %w", err)
	}
	monitoring.Logf("loaded %d samples (origin=%s)", len(res.Samples), res.Origin)

	analyzer := tracking.NewMovementAnalyzer()
	analyzer.Load(res.Samples)
	summary, ok := analyzer.Analyze()
	if !ok {
		return db.Run{}, false, nil
	}

	run := db.NewRun(cfg.Species, res.Origin, len(res.Samples), summary)
	if err := database.RecordRun(run); err != nil {
		return db.Run{}, false, fmt.Errorf("failed to record run: %w", err)
	}
	if err := database.RecordSamples(run.RunID, res.Samples); err != nil {
		return db.Run{}, false, fmt.Errorf("failed to record samples: %w", err)
	}

	now := time.Now()
	csvPath, err := report.WriteSummaryCSV(cfg.OutputDir, cfg.Species, summary, now)
	if err != nil {
		return run, true, fmt.Errorf("failed to export results: %w", err)
	}
	monitoring.Logf("results exported to %s", csvPath)

	trajPath, err := report.PlotTrajectories(cfg.OutputDir, res.Samples, now)
	if err != nil {
		return run, true, fmt.Errorf("failed to plot trajectories: %w", err)
	}
	histPath, err := report.PlotVelocityHistogram(cfg.OutputDir, res.Samples, now)
	if err != nil {
		return run, true, fmt.Errorf("failed to plot velocity histogram: %w", err)
	}
	chartPaths, err := report.WriteCharts(cfg.OutputDir, res.Samples, analyzer.Distances(), now)
	if err != nil {
		return run, true, fmt.Errorf("failed to write charts: %w", err)
	}
	monitoring.Logf("visualizations saved: %s %s %v", trajPath, histPath, chartPaths)

	return run, true, nil
}
