package config

import (
	"fmt"
	"path/filepath"
)

// Config describes where a run reads and writes, and how charts are sized.
type Config struct {
	Paths  PathsConfig  `yaml:"paths"`
	Charts ChartsConfig `yaml:"charts"`
}

// PathsConfig locates the input file and output directories.
type PathsConfig struct {
	Input        string `yaml:"input"`
	ProcessedDir string `yaml:"processed_dir"`
	DashboardDir string `yaml:"dashboard_dir"`
}

// ChartSize is a figure size in inches.
type ChartSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ChartsConfig controls raster output.
type ChartsConfig struct {
	DPI           int       `yaml:"dpi"`
	MonthlyTrend  ChartSize `yaml:"monthly_trend"`
	RegionalFlows ChartSize `yaml:"regional_flows"`
	TopMerchants  ChartSize `yaml:"top_merchants"`
}

// Output file names.
const (
	CleanFile        = "transactions_clean.csv"
	MonthlyFile      = "monthly_summary.csv"
	RegionalFile     = "regional_summary.csv"
	TopMerchantsFile = "top_merchants.csv"
	ManifestFile     = "manifest.yaml"

	MonthlyChartFile  = "monthly_trends.png"
	RegionalChartFile = "regional_flows.png"
	MerchantChartFile = "top_merchants.png"
)

// Default returns the fixed layout rooted at baseDir:
// data/bank_transactions_raw.csv in, data/processed/ and dashboards/ out.
func Default(baseDir string) *Config {
	return &Config{
		Paths: PathsConfig{
			Input:        filepath.Join(baseDir, "data", "bank_transactions_raw.csv"),
			ProcessedDir: filepath.Join(baseDir, "data", "processed"),
			DashboardDir: filepath.Join(baseDir, "dashboards"),
		},
		Charts: ChartsConfig{
			DPI:           150,
			MonthlyTrend:  ChartSize{Width: 10, Height: 4},
			RegionalFlows: ChartSize{Width: 7, Height: 4},
			TopMerchants:  ChartSize{Width: 8, Height: 5},
		},
	}
}

// Validate reports a config that cannot drive a run.
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("input path is empty")
	}
	if c.Paths.ProcessedDir == "" || c.Paths.DashboardDir == "" {
		return fmt.Errorf("output directories must be set")
	}
	if c.Charts.DPI <= 0 {
		return fmt.Errorf("chart dpi must be positive, got %d", c.Charts.DPI)
	}
	for name, s := range map[string]ChartSize{
		"monthly_trend":  c.Charts.MonthlyTrend,
		"regional_flows": c.Charts.RegionalFlows,
		"top_merchants":  c.Charts.TopMerchants,
	} {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("chart %s has non-positive size %gx%g", name, s.Width, s.Height)
		}
	}
	return nil
}

// OutputPath joins a processed-data file name onto the processed directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Paths.ProcessedDir, name)
}

// ChartPath joins a chart file name onto the dashboard directory.
func (c *Config) ChartPath(name string) string {
	return filepath.Join(c.Paths.DashboardDir, name)
}
