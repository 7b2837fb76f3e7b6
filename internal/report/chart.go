package report

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"hirelens/resume-analyzer/internal/models"
)

const (
	chartWidth    = 900
	chartHeight   = 420
	chartBarWidth = 60
	chartSpacing  = 40
)

var chartBarColor = drawing.ColorFromHex("fb923c")

// RenderChart draws the series as PNG bars on a fixed 0-100 scale. Labels
// and order are used as given.
func RenderChart(w io.Writer, series models.ChartSeries) error {
	if len(series) == 0 {
		return fmt.Errorf("chart series is empty")
	}

	bars := make([]chart.Value, 0, len(series))
	for _, point := range series {
		bars = append(bars, chart.Value{
			Label: point.Label,
			Value: float64(point.Value),
			Style: chart.Style{
				FillColor:   chartBarColor,
				StrokeColor: chartBarColor,
				StrokeWidth: 1,
			},
		})
	}

	graph := chart.BarChart{
		Title:      "Score Chart",
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
