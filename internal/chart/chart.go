// Package chart renders the summary tables as PNG charts.
package chart

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/etlerr"
	"github.com/cleared-dev/cashflow/internal/model"
)

const barWidth = 20 // points

// Renderer draws charts at a fixed resolution.
type Renderer struct {
	DPI int
}

// NewRenderer returns a Renderer using cfg's resolution.
func NewRenderer(cfg config.ChartsConfig) *Renderer {
	return &Renderer{DPI: cfg.DPI}
}

// MonthlyTrend draws net flow per month as a line with markers.
func (r *Renderer) MonthlyTrend(path string, size config.ChartSize, rows []model.MonthlySummary) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: monthly trend: no data", etlerr.ErrRender)
	}

	p := plot.New()
	p.Title.Text = "Monthly Net Cash Flow"
	p.Y.Label.Text = "Net Flow"

	pts := make(plotter.XYs, len(rows))
	labels := make([]string, len(rows))
	for i, m := range rows {
		pts[i].X = float64(i)
		pts[i].Y = m.NetFlow.InexactFloat64()
		labels[i] = m.YearMonth
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("%w: monthly trend: %w", etlerr.ErrRender, err)
	}
	p.Add(line, points, plotter.NewGrid())
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return r.save(p, path, size)
}

// RegionalFlows draws net flow per region as vertical bars, in row order.
func (r *Renderer) RegionalFlows(path string, size config.ChartSize, rows []model.RegionalSummary) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: regional flows: no data", etlerr.ErrRender)
	}

	p := plot.New()
	p.Title.Text = "Net Cash Flow by Region"
	p.Y.Label.Text = "Net Flow"

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, reg := range rows {
		values[i] = reg.NetFlow.InexactFloat64()
		labels[i] = reg.Region
	}

	bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return fmt.Errorf("%w: regional flows: %w", etlerr.ErrRender, err)
	}
	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)

	return r.save(p, path, size)
}

// TopMerchants draws spend per merchant as horizontal bars with the first
// row (highest spend) at the top.
func (r *Renderer) TopMerchants(path string, size config.ChartSize, rows []model.MerchantSpend) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: top merchants: no data", etlerr.ErrRender)
	}

	p := plot.New()
	p.Title.Text = "Top 10 Merchants by Spend"
	p.X.Label.Text = "Spend"

	// NominalY places index 0 at the bottom, so fill from the end.
	n := len(rows)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, m := range rows {
		values[n-1-i] = m.Spend.InexactFloat64()
		labels[n-1-i] = m.Merchant
	}

	bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return fmt.Errorf("%w: top merchants: %w", etlerr.ErrRender, err)
	}
	bars.Horizontal = true
	p.Add(bars, plotter.NewGrid())
	p.NominalY(labels...)

	return r.save(p, path, size)
}

func (r *Renderer) save(p *plot.Plot, path string, size config.ChartSize) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch),
		vgimg.UseDPI(r.DPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", etlerr.ErrFileAccess, path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: encoding %s: %w", etlerr.ErrRender, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", etlerr.ErrFileAccess, path, err)
	}
	return nil
}
