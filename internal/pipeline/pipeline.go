// Package pipeline runs extract, transform, load and visualize in order.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/cleared-dev/cashflow/internal/chart"
	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/extract"
	"github.com/cleared-dev/cashflow/internal/load"
	"github.com/cleared-dev/cashflow/internal/logger"
	"github.com/cleared-dev/cashflow/internal/manifest"
	"github.com/cleared-dev/cashflow/internal/transform"
)

// Report is what a successful run produced.
type Report struct {
	RunID    string
	Manifest *manifest.Manifest
}

// Run executes one full pass. The first failing stage aborts the run and its
// error is returned unchanged apart from stage context; outputs written before
// the failure are left as they are.
func Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	runID := manifest.NewRunID()
	log := logger.FromContext(ctx).With().Str("run_id", runID).Logger()
	started := time.Now()

	stage := logger.Stage(log, "extract")
	stage.Info().Str("input", cfg.Paths.Input).Msg("reading transactions")
	table, err := extract.ReadFile(cfg.Paths.Input)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	stage.Info().Int("rows", table.Len()).Msg("transactions read")

	stage = logger.Stage(log, "transform")
	res := transform.Run(table)
	stage.Info().
		Int("months", len(res.Monthly)).
		Int("regions", len(res.Regional)).
		Int("top_merchants", len(res.TopMerchants)).
		Msg("summaries computed")

	stage = logger.Stage(log, "load")
	outputs, err := load.WriteAll(cfg.Paths.ProcessedDir, res)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	stage.Info().Strs("files", outputs).Msg("tables written")

	stage = logger.Stage(log, "visualize")
	charts, err := chart.RenderAll(cfg, res)
	if err != nil {
		return nil, fmt.Errorf("visualize: %w", err)
	}
	stage.Info().Strs("files", charts).Msg("charts rendered")

	m := &manifest.Manifest{
		RunID:      runID,
		FinishedAt: time.Now().UTC(),
		Input:      cfg.Paths.Input,
		Counts: manifest.Counts{
			Transactions: len(res.Transactions),
			Months:       len(res.Monthly),
			Regions:      len(res.Regional),
			TopMerchants: len(res.TopMerchants),
		},
		Outputs: outputs,
		Charts:  charts,
		Config:  *cfg,
	}
	if err := manifest.Save(cfg.OutputPath(config.ManifestFile), m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	log.Info().Dur("elapsed", time.Since(started)).Msg("run complete")
	return &Report{RunID: runID, Manifest: m}, nil
}
