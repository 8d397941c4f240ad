package chart

import (
	"fmt"
	"os"

	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/etlerr"
	"github.com/cleared-dev/cashflow/internal/model"
)

// RenderAll draws the three dashboard charts into cfg's dashboard directory
// and returns the paths written.
func RenderAll(cfg *config.Config, res *model.Result) ([]string, error) {
	dir := cfg.Paths.DashboardDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating dashboard dir %s: %w", etlerr.ErrFileAccess, dir, err)
	}

	r := NewRenderer(cfg.Charts)
	var written []string

	path := cfg.ChartPath(config.MonthlyChartFile)
	if err := r.MonthlyTrend(path, cfg.Charts.MonthlyTrend, res.Monthly); err != nil {
		return written, err
	}
	written = append(written, path)

	path = cfg.ChartPath(config.RegionalChartFile)
	if err := r.RegionalFlows(path, cfg.Charts.RegionalFlows, res.Regional); err != nil {
		return written, err
	}
	written = append(written, path)

	path = cfg.ChartPath(config.MerchantChartFile)
	if err := r.TopMerchants(path, cfg.Charts.TopMerchants, res.TopMerchants); err != nil {
		return written, err
	}
	written = append(written, path)

	return written, nil
}
